package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shopadmin/internal/domain"
	"shopadmin/internal/repository"
)

type imageDoc struct {
	Data        []byte `bson:"data"`
	ContentType string `bson:"contentType"`
}

type productDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Price       float64            `bson:"price"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	Stock       int64              `bson:"stock"`
	Image       *imageDoc          `bson:"image"`
}

func (d productDoc) toDomain() *domain.Product {
	p := &domain.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Price:       d.Price,
		Description: d.Description,
		Category:    d.Category,
		Stock:       d.Stock,
	}
	if d.Image != nil {
		p.Image = &domain.ProductImage{Data: d.Image.Data, ContentType: d.Image.ContentType}
	}
	return p
}

type productRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) repository.ProductRepository {
	return &productRepository{collection: db.Collection(productsCollection)}
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	doc := productDoc{
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		Stock:       p.Stock,
	}
	if p.Image != nil {
		doc.Image = &imageDoc{Data: p.Image.Data, ContentType: p.Image.ContentType}
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc productDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *productRepository) Update(ctx context.Context, id string, f domain.ProductFields) (*domain.Product, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"name":        f.Name,
		"price":       f.Price,
		"description": f.Description,
		"category":    f.Category,
		"stock":       f.Stock,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc productDoc
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *productRepository) Delete(ctx context.Context, id string) (*domain.Product, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc productDoc
	if err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.M{"image.data": 0})

	cur, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]domain.Product, 0)
	for cur.Next(ctx) {
		var doc productDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode product: %w", err)
		}
		out = append(out, *doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return out, nil
}
