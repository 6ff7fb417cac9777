package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/service-catalog/internal/core/domain"
	"github.com/99minutos/service-catalog/internal/core/ports"
)

const collectionServices = "services"

// ServiceRepository implements ports.ServiceRepository using MongoDB.
type ServiceRepository struct {
	col *mongo.Collection
}

func NewServiceRepository(db *mongo.Database) *ServiceRepository {
	return &ServiceRepository{col: db.Collection(collectionServices)}
}

type mongoService struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Duration    *float64           `bson:"duration,omitempty"`
	Category    string             `bson:"category,omitempty"`
	IsActive    bool               `bson:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (m mongoService) toDomain() *domain.Service {
	return &domain.Service{
		ID:          m.ID.Hex(),
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Duration:    m.Duration,
		Category:    m.Category,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func fromDomain(id primitive.ObjectID, s *domain.Service) mongoService {
	return mongoService{
		ID:          id,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
		Duration:    s.Duration,
		Category:    s.Category,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// List returns every service matching f, sorted on a single field.
func (r *ServiceRepository) List(ctx context.Context, f ports.ListServicesFilter) ([]*domain.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, sort := buildListQuery(f)
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("find services: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoService
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}

	out := make([]*domain.Service, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// FindByID retrieves a service regardless of its isActive flag.
func (r *ServiceRepository) FindByID(ctx context.Context, id string) (*domain.Service, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrServiceNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoService
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, fmt.Errorf("find service: %w", err)
	}
	return doc.toDomain(), nil
}

// Create inserts a new service document and assigns its ID.
func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid := primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, fromDomain(oid, s)); err != nil {
		return fmt.Errorf("insert service: %w", err)
	}
	s.ID = oid.Hex()
	return nil
}

// Save replaces the stored document with s.
func (r *ServiceRepository) Save(ctx context.Context, s *domain.Service) error {
	oid, err := primitive.ObjectIDFromHex(s.ID)
	if err != nil {
		return domain.ErrServiceNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, fromDomain(oid, s))
	if err != nil {
		return fmt.Errorf("replace service: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the list query.
func (r *ServiceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "category", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// buildListQuery translates f into a Mongo filter and sort document.
// Search input is matched literally, never as a pattern.
func buildListQuery(f ports.ListServicesFilter) (bson.M, bson.D) {
	filter := bson.M{}
	if f.ActiveOnly {
		filter["isActive"] = true
	}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
		}
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}

	order := 1
	if f.SortDesc {
		order = -1
	}
	return filter, bson.D{{Key: sortField(f.SortBy), Value: order}}
}

func sortField(name string) string {
	switch {
	case name == "" || strings.HasPrefix(name, "$"):
		return "name"
	case name == "id":
		return "_id"
	default:
		return name
	}
}
