package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"patient-profile-service/internal/domain/entities"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const notifyChannel = "patient_records_changed"

// recordRow is the table shape: one JSONB document per record, with the
// ordering key lifted into its own column.
type recordRow struct {
	ID          string          `gorm:"column:id;primaryKey"`
	LastUpdated int64           `gorm:"column:last_updated;index"`
	Doc         json.RawMessage `gorm:"column:doc;type:jsonb;not null"`
}

// PostgresStore implements RecordStoreContract on a single JSONB table.
// Writes go through gorm; change push rides LISTEN/NOTIFY via a dedicated
// pq.Listener connection, and every notification triggers a full re-read so
// subscribers always receive whole-list snapshots.
type PostgresStore struct {
	db       *gorm.DB
	listener *pq.Listener
	logger   *zap.Logger
	table    string
	subs     *fanout
	stop     chan struct{}
	done     chan struct{}
}

var _ RecordStoreContract = (*PostgresStore)(nil)

func NewPostgresStore(dsn, table string, logger *zap.Logger) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Table(table).AutoMigrate(&recordRow{}); err != nil {
		return nil, fmt.Errorf("migrate %s: %w", table, err)
	}

	listener := pq.NewListener(dsn, time.Second, 30*time.Second,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				logger.Warn("record listener event", zap.Int("event", int(ev)), zap.Error(err))
			}
		})
	if err := listener.Listen(notifyChannel); err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("listen %s: %w", notifyChannel, err)
	}

	s := &PostgresStore{
		db:       db,
		listener: listener,
		logger:   logger,
		table:    table,
		subs:     newFanout(),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go s.pump()
	return s, nil
}

// pump converts NOTIFY wakeups into full-snapshot deliveries. The payload is
// ignored on purpose: the contract is replace-on-notify, not diffing.
func (s *PostgresStore) pump() {
	defer close(s.done)
	for {
		select {
		case <-s.stop:
			return
		case <-s.listener.Notify:
			// A nil notification means the listener reconnected; either way
			// the current state is re-read in full.
			s.publishCurrent()
		case <-time.After(90 * time.Second):
			if err := s.listener.Ping(); err != nil {
				s.subs.publish(Snapshot{Err: fmt.Errorf("subscription lost: %w", err)})
			}
		}
	}
}

func (s *PostgresStore) publishCurrent() {
	records, err := s.load(context.Background())
	if err != nil {
		s.subs.publish(Snapshot{Err: err})
		return
	}
	s.subs.publish(Snapshot{Records: records})
}

func (s *PostgresStore) load(ctx context.Context) ([]entities.PatientRecord, error) {
	var rows []recordRow
	if err := s.db.WithContext(ctx).Table(s.table).
		Order("last_updated DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	out := make([]entities.PatientRecord, 0, len(rows))
	for _, row := range rows {
		var rec entities.PatientRecord
		if err := json.Unmarshal(row.Doc, &rec); err != nil {
			s.logger.Warn("skipping unreadable record document",
				zap.String("id", row.ID), zap.Error(err))
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *PostgresStore) Subscribe(ctx context.Context) (<-chan Snapshot, func(), error) {
	records, err := s.load(ctx)
	initial := Snapshot{Records: records}
	if err != nil {
		initial = Snapshot{Err: err}
	}
	id, ch := s.subs.add(initial)
	return ch, func() { s.subs.remove(id) }, nil
}

// Upsert writes the full document with merge semantics: keys already present
// in a stored document but absent from the payload survive, matching the
// remote-merge behavior the rest of the system assumes.
func (s *PostgresStore) Upsert(ctx context.Context, record entities.PatientRecord) error {
	doc, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", record.ID, err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing recordRow
		err := tx.Table(s.table).Where("id = ?", record.ID).Take(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		merged, err := mergeDocs(existing.Doc, doc)
		if err != nil {
			return err
		}
		row := recordRow{ID: record.ID, LastUpdated: record.LastUpdated, Doc: merged}
		if err := tx.Table(s.table).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_updated", "doc"}),
		}).Create(&row).Error; err != nil {
			return err
		}
		return tx.Exec("SELECT pg_notify(?, ?)", notifyChannel, record.ID).Error
	})
	if err != nil {
		return fmt.Errorf("upsert %s: %w", record.ID, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(s.table).Where("id = ?", id).Delete(&recordRow{}).Error; err != nil {
			return err
		}
		return tx.Exec("SELECT pg_notify(?, ?)", notifyChannel, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}

// Close stops the notification pump, closes the listener connection and
// tears down all subscribers.
func (s *PostgresStore) Close() error {
	close(s.stop)
	<-s.done
	err := s.listener.Close()
	s.subs.closeAll()
	if sqlDB, dbErr := s.db.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}
	return err
}

// mergeDocs overlays the new document's keys onto the stored one.
func mergeDocs(existing, incoming json.RawMessage) (json.RawMessage, error) {
	if len(existing) == 0 {
		return incoming, nil
	}
	base := make(map[string]json.RawMessage)
	if err := json.Unmarshal(existing, &base); err != nil {
		// An unreadable stored document loses to the fresh payload.
		return incoming, nil
	}
	overlay := make(map[string]json.RawMessage)
	if err := json.Unmarshal(incoming, &overlay); err != nil {
		return nil, fmt.Errorf("merge documents: %w", err)
	}
	for k, v := range overlay {
		base[k] = v
	}
	return json.Marshal(base)
}
