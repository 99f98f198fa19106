package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shopadmin/internal/domain"
	"shopadmin/internal/repository"
)

type orderItemDoc struct {
	ProductID string  `bson:"product_id"`
	Name      string  `bson:"name"`
	Quantity  int64   `bson:"quantity"`
	Price     float64 `bson:"price"`
}

type orderDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	User      primitive.ObjectID `bson:"user"`
	Items     []orderItemDoc     `bson:"items"`
	Total     float64            `bson:"total"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`

	// filled by $lookup
	UserDocs []userDoc `bson:"user_docs,omitempty"`
}

func (d orderDoc) toDomain() *domain.Order {
	o := &domain.Order{
		ID:        d.ID.Hex(),
		UserID:    d.User.Hex(),
		Items:     make([]domain.OrderItem, 0, len(d.Items)),
		Total:     d.Total,
		Status:    domain.OrderStatus(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	for _, it := range d.Items {
		o.Items = append(o.Items, domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	if len(d.UserDocs) > 0 {
		o.User = d.UserDocs[0].toDomain()
	}
	return o
}

type orderRepository struct {
	collection *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) repository.OrderRepository {
	return &orderRepository{collection: db.Collection(ordersCollection)}
}

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	userID, err := primitive.ObjectIDFromHex(o.UserID)
	if err != nil {
		return fmt.Errorf("invalid user reference %q: %w", o.UserID, err)
	}
	if o.Status == "" {
		o.Status = domain.OrderStatusPending
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	o.CreatedAt, o.UpdatedAt = now, now

	doc := orderDoc{
		User:      userID,
		Items:     make([]orderItemDoc, 0, len(o.Items)),
		Total:     o.Total,
		Status:    string(o.Status),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, it := range o.Items {
		doc.Items = append(doc.Items, orderItemDoc(it))
	}

	res, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		o.ID = oid.Hex()
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var doc orderDoc
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns every order. With ExpandUser the user reference is resolved
// through $lookup, projected down to the requested fields.
func (r *orderRepository) List(ctx context.Context, opts repository.OrderListOptions) ([]domain.Order, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	if opts.ExpandUser {
		pipeline = append(pipeline, bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: "user"},
			{Key: "foreignField", Value: "_id"},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$project", Value: userProjection(opts.UserFields)}},
			}},
			{Key: "as", Value: "user_docs"},
		}}})
	}

	cur, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]domain.Order, 0)
	for cur.Next(ctx) {
		var doc orderDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode order: %w", err)
		}
		out = append(out, *doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return out, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"status":    string(status),
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc orderDoc
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return doc.toDomain(), nil
}

// userProjection never lets the password hash leave the database.
func userProjection(fields []string) bson.D {
	if len(fields) == 0 {
		return bson.D{{Key: "password_hash", Value: 0}}
	}
	proj := bson.D{{Key: "_id", Value: 1}}
	for _, f := range fields {
		switch f {
		case repository.UserFieldEmail, repository.UserFieldName, repository.UserFieldRole:
			proj = append(proj, bson.E{Key: f, Value: 1})
		}
	}
	return proj
}
