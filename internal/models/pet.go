package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reminder is a single care reminder attached to a pet.
type Reminder struct {
	Text string `bson:"text" json:"text"`
}

// UnmarshalJSON accepts both a bare string and a {"text": ...} object, since
// older clients submit reminder lists as plain strings.
func (rm *Reminder) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		rm.Text = s
		return nil
	}
	type alias Reminder
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*rm = Reminder(a)
	return nil
}

type Pet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   primitive.ObjectID `bson:"owner_id" json:"owner_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Name    string   `bson:"name" json:"name"`
	PetType string   `bson:"pet_type" json:"pet_type"`
	Age     int      `bson:"age" json:"age"`
	Weight  *float64 `bson:"weight" json:"weight"`
	Breed   string   `bson:"breed" json:"breed"`
	Tags    []string `bson:"tags" json:"tags"`

	PhotoURL  string     `bson:"photo_url,omitempty" json:"photo_url,omitempty"`
	Fact      *string    `bson:"fact" json:"fact"`
	Reminders []Reminder `bson:"reminders,omitempty" json:"reminders,omitempty"`
}

// HamsterFact is shown on the hamster detail page.
const HamsterFact = "Hamsters have cheek pouches that can extend all the way back to their shoulders, " +
	"allowing them to store a surprising amount of food."

// DisplayVariant maps a pet type to its detail view. Unknown types fall back
// to the hamster variant.
func DisplayVariant(petType string) string {
	switch petType {
	case "dog":
		return "dogpet"
	case "cat":
		return "catpet"
	case "hamster":
		return "hamsterpet"
	case "rabbit":
		return "rabbitpet"
	case "bird":
		return "birdpet"
	default:
		return "hamsterpet"
	}
}

// DefaultReminders returns the species-specific starter list shown when a pet
// has no saved reminders. The defaults are display-only and never persisted.
func DefaultReminders(petType string) []Reminder {
	var texts []string
	switch petType {
	case "dog":
		texts = []string{
			"Morning walk",
			"Refill water bowl",
			"Give flea medication",
			"Schedule vet checkup",
		}
	case "cat":
		texts = []string{
			"Scoop the litter box",
			"Get cat treats",
			"Clean the ears",
			"Give flea/tick treatment",
		}
	case "rabbit":
		texts = []string{
			"Clean cage",
			"Refill hay",
			"Trim nails",
			"Check teeth",
		}
	case "bird":
		texts = []string{
			"Clean cage",
			"Refresh seeds and water",
			"Spray bath",
			"Check feathers",
		}
	case "hamster":
		texts = []string{
			"Clean cage",
			"Refill food bowl",
			"Change bedding",
		}
	}

	reminders := make([]Reminder, 0, len(texts))
	for _, t := range texts {
		reminders = append(reminders, Reminder{Text: t})
	}
	return reminders
}
