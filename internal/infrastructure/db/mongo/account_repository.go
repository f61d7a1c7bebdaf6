package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/grupp3/accounts-api/internal/core/domain"
)

const accountCollection = "accounts"

type MongoAccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *MongoAccountRepository {
	return &MongoAccountRepository{coll: db.Collection(accountCollection)}
}

// EnsureIndexes creates the unique username index. The uniqueness invariant
// must hold at the store level, not just via the service pre-check, so this
// runs once at startup before the server accepts traffic.
func (r *MongoAccountRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	return nil
}

type mongoAccount struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
	RoleID       int                `bson:"role_id"`
	Version      int64              `bson:"version"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func toDocument(account *domain.Account) mongoAccount {
	return mongoAccount{
		Username:     account.Username,
		PasswordHash: account.PasswordHash,
		RoleID:       int(account.RoleID),
		Version:      account.Version,
		CreatedAt:    account.CreatedAt.Unix(),
		UpdatedAt:    account.UpdatedAt.Unix(),
	}
}

func toDomain(doc mongoAccount) *domain.Account {
	return &domain.Account{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		PasswordHash: doc.PasswordHash,
		RoleID:       domain.RoleID(doc.RoleID),
		Version:      doc.Version,
		CreatedAt:    unixToTime(doc.CreatedAt),
		UpdatedAt:    unixToTime(doc.UpdatedAt),
	}
}

func (r *MongoAccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"username": username}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count accounts: %w", err)
	}
	return n > 0, nil
}

func (r *MongoAccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	res, err := r.coll.InsertOne(ctx, toDocument(account))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created := *account
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoAccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// a malformed id cannot match any stored account
		return nil, domain.ErrAccountNotFound
	}

	var doc mongoAccount
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return toDomain(doc), nil
}

func (r *MongoAccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var doc mongoAccount
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return toDomain(doc), nil
}

func (r *MongoAccountRepository) ListExcludingRole(ctx context.Context, role domain.RoleID) ([]domain.Account, error) {
	opts := options.Find().
		SetProjection(bson.M{"username": 1, "role_id": 1}).
		SetSort(bson.D{{Key: "username", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{"role_id": bson.M{"$ne": int(role)}}, opts)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoAccount
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}

	accounts := make([]domain.Account, 0, len(docs))
	for _, doc := range docs {
		accounts = append(accounts, *toDomain(doc))
	}
	return accounts, nil
}

// Update rewrites mutable fields, guarded by the document version. A matched
// count of zero on an id that still exists means someone else updated the
// document in between: that is reported as a conflict, not retried.
func (r *MongoAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	oid, err := primitive.ObjectIDFromHex(account.ID)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "version": account.Version},
		bson.M{
			"$set": bson.M{
				"username":      account.Username,
				"password_hash": account.PasswordHash,
				"updated_at":    account.UpdatedAt.Unix(),
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Err(); err == mongo.ErrNoDocuments {
			return domain.ErrAccountNotFound
		}
		return domain.ErrStoreConflict
	}
	return nil
}

func (r *MongoAccountRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
