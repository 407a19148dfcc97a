package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ezwallet/wallet-system/internal/core/domain"
)

const groupCollection = "groups"

type MongoGroupRepository struct {
	coll *mongo.Collection
}

func NewGroupRepository(db *mongo.Database) *MongoGroupRepository {
	return &MongoGroupRepository{coll: db.Collection(groupCollection)}
}

type mongoGroup struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Name    string             `bson:"name"`
	Members []mongoGroupMember `bson:"members"`
}

type mongoGroupMember struct {
	Email string `bson:"email"`
}

func (r *MongoGroupRepository) FindByName(ctx context.Context, name string) (*domain.Group, error) {
	var mg mongoGroup
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&mg); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrGroupNotFound
		}
		return nil, fmt.Errorf("find group: %w", err)
	}

	emails := make([]string, 0, len(mg.Members))
	for _, m := range mg.Members {
		emails = append(emails, m.Email)
	}
	return &domain.Group{
		ID:           mg.ID.Hex(),
		Name:         mg.Name,
		MemberEmails: emails,
	}, nil
}
