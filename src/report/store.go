package report

import (
	"context"
	"fmt"

	"github.com/tweets-stream/reporter/src/utils/model"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const rateCondition = "insert_time >= (current_timestamp - interval '1 hours')"

// Counts rows straight in the stream tables
type Store struct {
	db *gorm.DB
}

func NewStore() (self *Store) {
	return new(Store)
}

func (self *Store) WithDB(db *gorm.DB) *Store {
	self.db = db
	return self
}

func (self *Store) CountRate(ctx context.Context, source model.Source) (int64, error) {
	return self.count(ctx, source, rateCondition)
}

func (self *Store) CountTotal(ctx context.Context, source model.Source) (int64, error) {
	return self.count(ctx, source, "")
}

func (self *Store) count(ctx context.Context, source model.Source, condition string) (n int64, err error) {
	query, err := countQuery(source, condition)
	if err != nil {
		return
	}

	err = self.db.WithContext(ctx).Raw(query).Scan(&n).Error
	return
}

// Table names can't be bound as parameters, so only known sources get into the query, always quoted
func countQuery(source model.Source, condition string) (string, error) {
	if !source.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}

	query := "select count(id) from " + pq.QuoteIdentifier(source.TableName())
	if condition != "" {
		query += " where " + condition
	}
	return query, nil
}
