// internal/app/system/identity/mongo.go
package identity

import (
	"context"
	"errors"
	"time"

	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/system/normalize"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// account is the stored form of an auth account. The password never
// leaves this package.
type account struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash []byte    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

// MongoProvider implements Provider on a Mongo collection plus HS256
// access tokens. It is constructed once at startup and shared.
type MongoProvider struct {
	c   *mongo.Collection
	cfg TokenConfig
	log *zap.Logger
}

// NewMongoProvider builds a provider over the auth_accounts collection.
func NewMongoProvider(db *mongo.Database, cfg TokenConfig, logger *zap.Logger) *MongoProvider {
	return &MongoProvider{c: db.Collection("auth_accounts"), cfg: cfg, log: logger}
}

// CreateAccount registers a pre-confirmed account. The unique index on
// email turns concurrent duplicates into ErrEmailTaken.
func (p *MongoProvider) CreateAccount(ctx context.Context, email, password string) (Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	now := time.Now().UTC()
	acct := account{
		ID:           uuid.NewString(),
		Email:        normalize.Email(email),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := p.c.InsertOne(ctx, acct); err != nil {
		if wafflemongo.IsDup(err) {
			return Account{}, ErrEmailTaken
		}
		return Account{}, err
	}
	return Account{ID: acct.ID, Email: acct.Email}, nil
}

// Authenticate verifies the email/password pair and mints a token.
// Unknown emails and wrong passwords are indistinguishable to callers.
func (p *MongoProvider) Authenticate(ctx context.Context, email, password string) (string, Account, error) {
	var acct account
	err := p.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&acct)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", Account{}, ErrInvalidCredentials
		}
		return "", Account{}, err
	}

	if err := bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(password)); err != nil {
		return "", Account{}, ErrInvalidCredentials
	}

	out := Account{ID: acct.ID, Email: acct.Email}
	token, err := mintToken(p.cfg, out, time.Now().UTC())
	if err != nil {
		p.log.Error("token mint failed", zap.Error(err))
		return "", Account{}, err
	}
	return token, out, nil
}

// VerifyToken validates a bearer token and returns the account it names.
func (p *MongoProvider) VerifyToken(ctx context.Context, token string) (Account, error) {
	claims, err := parseToken(p.cfg, token)
	if err != nil {
		return Account{}, err
	}

	// Confirm the account still exists; tokens outlive deletions.
	var acct account
	if err := p.c.FindOne(ctx, bson.M{"_id": claims.Subject}).Decode(&acct); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Account{}, ErrInvalidToken
		}
		return Account{}, err
	}
	return Account{ID: acct.ID, Email: acct.Email}, nil
}

// UpdatePassword replaces the stored hash for an account.
func (p *MongoProvider) UpdatePassword(ctx context.Context, accountID, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	res, err := p.c.UpdateOne(ctx,
		bson.M{"_id": accountID},
		bson.M{"$set": bson.M{"password_hash": hash, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAccountNotFound
	}
	return nil
}
