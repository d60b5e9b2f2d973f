package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"petdiary-backend/internal/models"
	"petdiary-backend/internal/store"
)

type Diary struct {
	c *mongo.Collection
}

func NewDiary(db *mongo.Database) *Diary {
	return &Diary{c: db.Collection("diary_posts")}
}

func (s *Diary) Insert(ctx context.Context, p *models.DiaryPost) (string, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return "", err
	}
	return p.ID.Hex(), nil
}

func (s *Diary) FindByID(ctx context.Context, id string) (*models.DiaryPost, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	var p models.DiaryPost
	err = s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByPet matches pet_id as the stored hex string, newest first.
func (s *Diary) ListByPet(ctx context.Context, petID string) ([]models.DiaryPost, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	findOptions := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := s.c.Find(ctx, bson.M{"pet_id": petID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.DiaryPost{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Diary) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	res, err := s.c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Diary) DeleteByPet(ctx context.Context, petID string) (int64, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	res, err := s.c.DeleteMany(ctx, bson.M{"pet_id": petID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
