package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"petdiary-backend/internal/models"
	"petdiary-backend/internal/store"
)

type Pets struct {
	c *mongo.Collection
}

func NewPets(db *mongo.Database) *Pets {
	return &Pets{c: db.Collection("pets")}
}

func (s *Pets) Insert(ctx context.Context, p *models.Pet) (string, error) {
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

func (s *Pets) FindOwned(ctx context.Context, id, ownerID string) (*models.Pet, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	owner, err := objectID(ownerID)
	if err != nil {
		return nil, err
	}
	return s.findOne(ctx, bson.M{"_id": oid, "owner_id": owner})
}

func (s *Pets) FindByID(ctx context.Context, id string) (*models.Pet, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *Pets) findOne(ctx context.Context, filter bson.M) (*models.Pet, error) {
	ctx, cancel := opContext(ctx)
	defer cancel()

	var p models.Pet
	err := s.c.FindOne(ctx, filter).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Pets) ListByOwner(ctx context.Context, ownerID string) ([]models.Pet, error) {
	owner, err := objectID(ownerID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	cursor, err := s.c.Find(ctx, bson.M{"owner_id": owner})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	pets := []models.Pet{}
	if err := cursor.All(ctx, &pets); err != nil {
		return nil, err
	}
	return pets, nil
}

func (s *Pets) Update(ctx context.Context, id string, upd store.PetUpdate) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	set := bson.M{
		"name":       upd.Name,
		"pet_type":   upd.PetType,
		"age":        upd.Age,
		"weight":     upd.Weight,
		"breed":      upd.Breed,
		"tags":       upd.Tags,
		"updated_at": upd.UpdatedAt,
	}
	if upd.PhotoURL != nil {
		set["photo_url"] = *upd.PhotoURL
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Pets) SetReminders(ctx context.Context, id string, reminders []models.Reminder) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := opContext(ctx)
	defer cancel()

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"reminders": reminders}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Pets) Delete(ctx context.Context, id string) error {
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
