package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/simplecrm/crm-system/internal/core/domain"
	"github.com/simplecrm/crm-system/internal/core/ports"
)

const (
	collectionRequests = "requests"
	requestIDSequence  = "request_id"
)

type RequestRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{db: db, col: db.Collection(collectionRequests)}
}

// Create inserts a new request document under the next integer id.
func (r *RequestRepository) Create(ctx context.Context, req *domain.Request) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, requestIDSequence)
	if err != nil {
		return err
	}
	req.ID = id

	_, err = r.col.InsertOne(ctx, req)
	return err
}

func (r *RequestRepository) FindByID(ctx context.Context, id int) (*domain.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var req domain.Request
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// List returns the requests matching filter. An exact status match is applied
// when filter.Status is non-empty; an unrecognised or empty sort leaves the
// cursor in natural order.
func (r *RequestRepository) List(ctx context.Context, filter ports.ListRequestsFilter) ([]*domain.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	opts := options.Find()
	switch filter.Sort {
	case ports.SortDateAsc:
		opts.SetSort(bson.D{{Key: "created_at", Value: 1}})
	case ports.SortDateDesc:
		opts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	case ports.SortStatusAsc:
		opts.SetSort(bson.D{{Key: "status", Value: 1}})
	case ports.SortStatusDesc:
		opts.SetSort(bson.D{{Key: "status", Value: -1}})
	}

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]*domain.Request, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Update replaces the four mutable fields of an existing document. The id and
// created_at are never touched.
func (r *RequestRepository) Update(ctx context.Context, req *domain.Request) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateByID(ctx, req.ID, bson.M{"$set": bson.M{
		"title":                req.Title,
		"description":          req.Description,
		"status":               req.Status,
		"responsible_employee": req.ResponsibleEmployee,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

func (r *RequestRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the listing filter and sorts.
func (r *RequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
