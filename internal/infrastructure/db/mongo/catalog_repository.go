package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillnet/skillnet/internal/core/domain"
)

const (
	collectionCategories = "categories"
	collectionProviders  = "service_providers"
)

type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{col: db.Collection(collectionCategories)}
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := []domain.Category{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Category
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) Upsert(ctx context.Context, c domain.Category) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c, options.Replace().SetUpsert(true))
	return err
}

// providerDoc stores a folded copy of the searchable fields so lookups can
// ignore case and accents with a plain regex.
type providerDoc struct {
	domain.ServiceProvider `bson:",inline"`
	SearchText             string `bson:"search_text"`
}

func newProviderDoc(p *domain.ServiceProvider) providerDoc {
	text := strings.Join([]string{p.Name, p.Category.Name, p.City}, " ")
	return providerDoc{ServiceProvider: *p, SearchText: domain.Fold(text)}
}

type ProviderRepository struct {
	col *mongo.Collection
}

func NewProviderRepository(db *mongo.Database) *ProviderRepository {
	return &ProviderRepository{col: db.Collection(collectionProviders)}
}

func (r *ProviderRepository) Create(ctx context.Context, p *domain.ServiceProvider) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, newProviderDoc(p)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *ProviderRepository) FindByID(ctx context.Context, id string) (*domain.ServiceProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc providerDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProviderNotFound
		}
		return nil, err
	}
	return &doc.ServiceProvider, nil
}

func (r *ProviderRepository) List(ctx context.Context) ([]domain.ServiceProvider, error) {
	return r.find(ctx, bson.M{})
}

func (r *ProviderRepository) Search(ctx context.Context, query string) ([]domain.ServiceProvider, error) {
	pattern := regexp.QuoteMeta(domain.Fold(query))
	return r.find(ctx, bson.M{"search_text": bson.M{"$regex": pattern}})
}

func (r *ProviderRepository) Update(ctx context.Context, p *domain.ServiceProvider) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, newProviderDoc(p))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrProviderNotFound
	}
	return nil
}

func (r *ProviderRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrProviderNotFound
	}
	return nil
}

func (r *ProviderRepository) find(ctx context.Context, filter bson.M) ([]domain.ServiceProvider, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find providers: %w", err)
	}
	var docs []providerDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("find providers: %w", err)
	}
	out := make([]domain.ServiceProvider, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ServiceProvider)
	}
	return out, nil
}

// EnsureIndexes creates the search and category indexes.
func (r *ProviderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "search_text", Value: 1}}},
		{Keys: bson.D{{Key: "category.id", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
