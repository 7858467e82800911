package store

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/bsonx"
	"go.uber.org/zap"
	"registration-backend/entity"
	"registration-backend/errs"
	"registration-backend/log"
)

const RegistrationsCollection = "registrations"

type Registrations struct {
	c *mongo.Collection
}

// NewRegistrations binds the registrations collection of db and makes sure
// the unique email index exists.
func NewRegistrations(ctx context.Context, db *mongo.Database) (*Registrations, error) {
	c := db.Collection(RegistrationsCollection)

	_, err := c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bsonx.Doc{{Key: "email", Value: bsonx.Int32(1)}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		log.Logger.Error("unable to create index", zap.Error(err), zap.String("collection", RegistrationsCollection))
		return nil, err
	}

	return &Registrations{c: c}, nil
}

func (s *Registrations) Insert(ctx context.Context, r *entity.Registration) error {
	_, err := s.c.InsertOne(ctx, r)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Logger.Debug("already registered", zap.String("email", r.Email), zap.Error(err))
			return errs.ErrAlreadyExists
		}

		log.Logger.Error("failed inserting registration", zap.Error(err))
		return errs.ErrDatabase
	}

	return nil
}

func (s *Registrations) Ping(ctx context.Context) error {
	return s.c.Database().Client().Ping(ctx, readpref.Primary())
}
