package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pawstays/petpolicy-cli/internal/db"
	"github.com/pawstays/petpolicy-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the hottest store operations. The per-hotel attribute
// upsert dominates query volume during a transfer run.
var preparedStatements = map[string]string{
	"update_attribute":       sqlUpdateAttribute,
	"insert_attribute":       sqlInsertAttribute,
	"resolve_attribute_type": `SELECT id FROM ingestion.attribute_types WHERE name = $1`,
}

const sqlUpdateAttribute = `UPDATE ingestion.hotel_attributes
SET value = $1, value_bool = $2, value_int = $3, value_num = $4, value_arr = $5,
    confidence = $6, enabled = $7, is_null = $8, is_invalid = $9, updated_at = $10
WHERE hotel_id = $11 AND attribute_type_id = $12 AND generated_by = $13 AND enabled = true`

const sqlInsertAttribute = `INSERT INTO ingestion.hotel_attributes
(id, hotel_id, attribute_type_id, value, value_bool, value_int, value_num, value_arr,
 confidence, enabled, is_null, is_invalid, generated_by, created_by, effective_date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresFromPool wraps an existing pool. Used by tests.
func NewPostgresFromPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Pool returns the underlying database pool for subsystems that need
// direct query access.
func (s *PostgresStore) Pool() db.Pool {
	return s.pool
}

const postgresMigration = `
CREATE SCHEMA IF NOT EXISTS ingestion;

CREATE TABLE IF NOT EXISTS ingestion.hotels (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	name       TEXT NOT NULL,
	slug       TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS ingestion.attribute_types (
	id   TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS ingestion.hotel_attributes (
	id                TEXT PRIMARY KEY,
	hotel_id          TEXT NOT NULL REFERENCES ingestion.hotels(id),
	attribute_type_id TEXT NOT NULL REFERENCES ingestion.attribute_types(id),
	value             TEXT,
	value_bool        BOOLEAN,
	value_int         BIGINT,
	value_num         DOUBLE PRECISION,
	value_arr         TEXT[],
	confidence        DOUBLE PRECISION NOT NULL DEFAULT 0,
	enabled           BOOLEAN NOT NULL DEFAULT true,
	is_null           BOOLEAN NOT NULL DEFAULT false,
	is_invalid        BOOLEAN NOT NULL DEFAULT false,
	generated_by      TEXT NOT NULL,
	created_by        TEXT NOT NULL,
	effective_date    TIMESTAMPTZ NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_hotel_attributes_lookup
	ON ingestion.hotel_attributes (hotel_id, attribute_type_id, generated_by)
	WHERE enabled = true;

CREATE TABLE IF NOT EXISTS ingestion.scraped_pet_policies (
	id                    BIGSERIAL PRIMARY KEY,
	hotel_id              TEXT REFERENCES ingestion.hotels(id),
	web_slug              TEXT,
	is_pet_friendly       TEXT,
	pet_fee_night         TEXT,
	pet_fee_total_max     TEXT,
	pet_fee_interval      TEXT,
	max_pets              TEXT,
	allowed_pet_types     TEXT,
	breed_restrictions    TEXT,
	has_pet_deposit       TEXT,
	is_deposit_refundable TEXT,
	pet_fee_currency      TEXT,
	pet_fee_variations    TEXT,
	pet_amenities         TEXT,
	has_pet_amenities     TEXT,
	pet_policy            TEXT,
	pet_fee_deposit       TEXT,
	created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at            TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS ingestion.hotel_mapped_url (
	id             BIGSERIAL PRIMARY KEY,
	url            TEXT NOT NULL UNIQUE,
	hotel_name     TEXT,
	city           TEXT,
	state          TEXT,
	country        TEXT,
	country_code   TEXT,
	address_line1  TEXT,
	content_hash   TEXT,
	web_slug       TEXT,
	web_context    TEXT,
	pet_attributes JSONB,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

// ResolveAttributeTypes returns the id of each named attribute type that
// exists. Missing names are absent from the result, not an error.
func (s *PostgresStore) ResolveAttributeTypes(ctx context.Context, names []string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	for _, name := range names {
		var id string
		err := s.pool.QueryRow(ctx,
			`SELECT id FROM ingestion.attribute_types WHERE name = $1`, name,
		).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			zap.L().Warn("attribute type not found, skipping", zap.String("name", name))
			continue
		}
		if err != nil {
			return nil, eris.Wrapf(err, "postgres: resolve attribute type %s", name)
		}
		out[name] = id
	}
	return out, nil
}

// RemapSlugs links scraped records to canonical hotels by slug match.
// A failure here halts the run: attribute rows must never attach to a
// stale hotel mapping.
func (s *PostgresStore) RemapSlugs(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE ingestion.scraped_pet_policies s
		SET hotel_id = h.id, updated_at = now()
		FROM ingestion.hotels h
		WHERE s.web_slug = h.slug AND (s.hotel_id IS DISTINCT FROM h.id)`)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: remap slugs")
	}
	return tag.RowsAffected(), nil
}

const sqlListScraped = `SELECT hotel_id, is_pet_friendly, pet_fee_night, pet_fee_total_max,
	pet_fee_interval, max_pets, allowed_pet_types, breed_restrictions, has_pet_deposit,
	is_deposit_refundable, pet_fee_currency, pet_fee_variations, pet_amenities,
	has_pet_amenities, pet_policy, pet_fee_deposit
FROM ingestion.scraped_pet_policies
WHERE hotel_id IS NOT NULL
ORDER BY id`

func (s *PostgresStore) ListScrapedHotels(ctx context.Context) ([]model.ScrapedHotel, error) {
	rows, err := s.pool.Query(ctx, sqlListScraped)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list scraped hotels")
	}
	defer rows.Close()

	var hotels []model.ScrapedHotel
	for rows.Next() {
		var h model.ScrapedHotel
		if err := rows.Scan(&h.HotelID, &h.IsPetFriendly, &h.PetFeeNight, &h.PetFeeTotalMax,
			&h.PetFeeInterval, &h.MaxPets, &h.AllowedPetTypes, &h.BreedRestrictions,
			&h.HasPetDeposit, &h.IsDepositRefundable, &h.PetFeeCurrency, &h.PetFeeVariations,
			&h.PetAmenities, &h.HasPetAmenities, &h.PetPolicy, &h.PetFeeDeposit); err != nil {
			return nil, eris.Wrap(err, "postgres: scan scraped hotel")
		}
		hotels = append(hotels, h)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate scraped hotels")
	}
	return hotels, nil
}

// WithHotelTx runs fn inside a transaction. All of one hotel's attribute
// writes commit together or not at all.
func (s *PostgresStore) WithHotelTx(ctx context.Context, fn func(w AttributeWriter) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin tx")
	}
	w := &pgWriter{q: tx}
	if err := fn(w); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			zap.L().Warn("rollback failed", zap.Error(rbErr))
		}
		return err
	}
	return eris.Wrap(tx.Commit(ctx), "postgres: commit tx")
}

// pgWriter performs attribute upserts against a transaction.
type pgWriter struct {
	q db.Querier
}

// UpsertAttribute updates the hotel's existing enabled row from this
// pipeline, or inserts a fresh one. Rows written by other generators are
// never touched.
func (w *pgWriter) UpsertAttribute(ctx context.Context, up AttributeUpsert) (UpsertResult, error) {
	now := time.Now().UTC()
	arr := up.ValueArr
	text := up.TextValue()

	tag, err := w.q.Exec(ctx, sqlUpdateAttribute,
		text, up.ValueBool, up.ValueInt, up.ValueNum, arr,
		up.Confidence(), up.Enabled(), up.IsNull, up.IsInvalid, now,
		up.HotelID, up.AttributeTypeID, Provenance,
	)
	if err != nil {
		return ResultSkipped, eris.Wrapf(err, "postgres: update attribute %s", up.Name)
	}
	if tag.RowsAffected() > 0 {
		return ResultUpdated, nil
	}

	_, err = w.q.Exec(ctx, sqlInsertAttribute,
		uuid.New().String(), up.HotelID, up.AttributeTypeID,
		text, up.ValueBool, up.ValueInt, up.ValueNum, arr,
		up.Confidence(), up.Enabled(), up.IsNull, up.IsInvalid,
		Provenance, "system", now, now, now,
	)
	if err != nil {
		return ResultSkipped, eris.Wrapf(err, "postgres: insert attribute %s", up.Name)
	}
	return ResultInserted, nil
}

// SaveRawExtraction upserts a URL-keyed scrape record and returns its id.
func (s *PostgresStore) SaveRawExtraction(ctx context.Context, rec model.HotelRecord) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO ingestion.hotel_mapped_url
			(url, hotel_name, city, state, country, country_code, address_line1, content_hash, web_slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now(), now())
		ON CONFLICT (url) DO UPDATE SET
			hotel_name = EXCLUDED.hotel_name, city = EXCLUDED.city, state = EXCLUDED.state,
			country = EXCLUDED.country, country_code = EXCLUDED.country_code,
			address_line1 = EXCLUDED.address_line1, content_hash = EXCLUDED.content_hash,
			web_slug = EXCLUDED.web_slug, updated_at = now()
		RETURNING id`,
		rec.URL, rec.HotelName, rec.City, rec.State, rec.Country, rec.CountryCode,
		rec.AddressLine1, rec.Hash, rec.WebSlug,
	).Scan(&id)
	if err != nil {
		return 0, eris.Wrapf(err, "postgres: save raw extraction %s", rec.URL)
	}
	return id, nil
}

func (s *PostgresStore) SaveWebContext(ctx context.Context, recordID int64, webContext string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE ingestion.hotel_mapped_url SET web_context = $1, updated_at = now() WHERE id = $2`,
		webContext, recordID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: save web context %d", recordID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("record not found: %d", recordID)
	}
	return nil
}

func (s *PostgresStore) SavePetAttributes(ctx context.Context, recordID int64, result *model.PetPolicyResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal pet attributes")
	}
	tag, err := s.pool.Exec(ctx,
		`UPDATE ingestion.hotel_mapped_url SET pet_attributes = $1, updated_at = now() WHERE id = $2`,
		payload, recordID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: save pet attributes %d", recordID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("record not found: %d", recordID)
	}
	return nil
}

func (s *PostgresStore) UpdateWebSlug(ctx context.Context, recordID int64, slug string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE ingestion.hotel_mapped_url SET web_slug = $1, updated_at = now() WHERE id = $2`,
		slug, recordID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update web slug %d", recordID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("record not found: %d", recordID)
	}
	return nil
}

// CheckURLExists reports whether a URL already has both web context and pet
// attributes stored, making a re-scrape skippable when the content hash is
// unchanged.
func (s *PostgresStore) CheckURLExists(ctx context.Context, url string) (int64, string, bool, error) {
	var id int64
	var hash *string
	err := s.pool.QueryRow(ctx, `
		SELECT id, content_hash FROM ingestion.hotel_mapped_url
		WHERE url = $1 AND web_context IS NOT NULL AND pet_attributes IS NOT NULL`,
		url,
	).Scan(&id, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, "", false, nil
	}
	if err != nil {
		return 0, "", false, eris.Wrapf(err, "postgres: check url %s", url)
	}
	h := ""
	if hash != nil {
		h = *hash
	}
	return id, h, true, nil
}
