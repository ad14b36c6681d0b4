package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/revenuedash/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost used when hashing new passwords.
const BcryptCost = 12

var (
	// ErrDuplicateLoginID is returned when a login id is already taken.
	ErrDuplicateLoginID = errors.New("a user with this login id already exists")
	// ErrInvalidCredentials covers unknown login ids, wrong passwords, and
	// disabled accounts so callers cannot tell them apart.
	ErrInvalidCredentials = errors.New("invalid login id or password")

	errTenantNeeded  = errors.New("user must have tenant_id")
	errLoginNeeded   = errors.New("user must have login_id")
	errPasswordEmpty = errors.New("password is required")
	errBadStatus     = errors.New(`status must be "active"|"disabled"`)
)

type Store struct {
	c    *mongo.Collection
	cost int
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users"), cost: BcryptCost}
}

// WithCost returns a copy of the store that hashes with cost. Tests use
// bcrypt.MinCost.
func (s *Store) WithCost(cost int) *Store {
	return &Store{c: s.c, cost: cost}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByLoginID looks up a user by case/diacritic-insensitive login id.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByLoginID(ctx context.Context, loginID string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"login_id_ci": text.Fold(strings.TrimSpace(loginID))}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user, hashing password.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.TenantID = strings.TrimSpace(u.TenantID)
	u.LoginID = strings.TrimSpace(u.LoginID)
	u.LoginIDCI = text.Fold(u.LoginID)
	u.FullName = strings.TrimSpace(u.FullName)
	if u.Status == "" {
		u.Status = "active"
	}

	switch {
	case u.TenantID == "":
		return models.User{}, errTenantNeeded
	case u.LoginID == "":
		return models.User{}, errLoginNeeded
	case password == "":
		return models.User{}, errPasswordEmpty
	case u.Status != "active" && u.Status != "disabled":
		return models.User{}, errBadStatus
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return models.User{}, err
	}
	u.PasswordHash = string(hash)

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateLoginID
		}
		return models.User{}, err
	}
	return u, nil
}

// Authenticate verifies loginID/password and returns the active user.
func (s *Store) Authenticate(ctx context.Context, loginID, password string) (*models.User, error) {
	u, err := s.GetByLoginID(ctx, loginID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive() || u.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// SetStatus enables or disables a user.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if status != "active" && status != "disabled" {
		return errBadStatus
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	return err
}
