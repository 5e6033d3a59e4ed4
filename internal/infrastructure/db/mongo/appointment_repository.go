package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/skillnet/skillnet/internal/core/domain"
	"github.com/skillnet/skillnet/internal/emulator/ports"
)

const collectionAppointments = "appointments"

type statusEntry struct {
	Status    string    `bson:"status"`
	Timestamp time.Time `bson:"timestamp"`
}

// appointmentDoc adds the storage-only fields. Slot is set while the
// appointment holds its hour and removed on cancellation; a sparse unique
// index on it rejects double bookings.
type appointmentDoc struct {
	domain.Appointment `bson:",inline"`
	Slot               string        `bson:"slot,omitempty"`
	History            []statusEntry `bson:"status_history,omitempty"`
}

func slotKey(providerID, date, hour string) string {
	return providerID + "|" + date + "|" + hour
}

type AppointmentRepository struct {
	col *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{col: db.Collection(collectionAppointments)}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := appointmentDoc{
		Appointment: *a,
		Slot:        slotKey(a.Provider.ID, a.Date, a.Hour),
		History:     []statusEntry{{Status: string(a.Status), Timestamp: a.CreatedAt}},
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlotTaken
		}
		return err
	}
	return nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc appointmentDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}
	return &doc.Appointment, nil
}

func (r *AppointmentRepository) List(ctx context.Context, filter ports.AppointmentFilter) ([]domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{}
	if filter.ClientID != "" {
		q["client.id"] = filter.ClientID
	}
	if filter.ProviderID != "" {
		q["provider.id"] = filter.ProviderID
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "hour", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	var docs []appointmentDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	out := make([]domain.Appointment, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Appointment)
	}
	return out, nil
}

// UpdateStatus atomically sets the new status and appends a history entry,
// guarded on the current status.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, from, to domain.AppointmentStatus, at time.Time) (*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$set":  bson.M{"status": string(to), "updated_at": at.UTC()},
		"$push": bson.M{"status_history": statusEntry{Status: string(to), Timestamp: at.UTC()}},
	}
	if to == domain.StatusCancel {
		update["$unset"] = bson.M{"slot": ""}
	}

	var doc appointmentDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": string(from)},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return nil, findErr
		}
		return nil, domain.ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("update appointment status: %w", err)
	}
	return &doc.Appointment, nil
}

func (r *AppointmentRepository) BookedHours(ctx context.Context, providerID, date string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"provider.id": providerID,
		"date":        date,
		"status":      bson.M{"$ne": string(domain.StatusCancel)},
	}
	opts := options.Find().SetProjection(bson.M{"hour": 1}).SetSort(bson.D{{Key: "hour", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("booked hours: %w", err)
	}
	var rows []struct {
		Hour string `bson:"hour"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("booked hours: %w", err)
	}
	hours := make([]string, 0, len(rows))
	for _, row := range rows {
		hours = append(hours, row.Hour)
	}
	return hours, nil
}

func (r *AppointmentRepository) CountByStatus(ctx context.Context) (map[domain.AppointmentStatus]int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$status"}, {Key: "n", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("count appointments: %w", err)
	}
	var rows []struct {
		Status string `bson:"_id"`
		N      int    `bson:"n"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("count appointments: %w", err)
	}
	counts := make(map[domain.AppointmentStatus]int, len(rows))
	for _, row := range rows {
		counts[domain.AppointmentStatus(row.Status)] = row.N
	}
	return counts, nil
}

// EnsureIndexes creates the slot and scoping indexes.
func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slot", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "client.id", Value: 1}}},
		{Keys: bson.D{{Key: "provider.id", Value: 1}, {Key: "date", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
