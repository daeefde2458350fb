package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/pawstays/petpolicy-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. Intended for local
// development runs; tag lists are stored as JSON text since SQLite has no
// array type.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS hotels (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	slug       TEXT NOT NULL UNIQUE,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS attribute_types (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS hotel_attributes (
	id                TEXT PRIMARY KEY,
	hotel_id          TEXT NOT NULL REFERENCES hotels(id),
	attribute_type_id TEXT NOT NULL REFERENCES attribute_types(id),
	value             TEXT,
	value_bool        INTEGER,
	value_int         INTEGER,
	value_num         REAL,
	value_arr         TEXT,
	confidence        REAL NOT NULL DEFAULT 0,
	enabled           INTEGER NOT NULL DEFAULT 1,
	is_null           INTEGER NOT NULL DEFAULT 0,
	is_invalid        INTEGER NOT NULL DEFAULT 0,
	generated_by      TEXT NOT NULL,
	created_by        TEXT NOT NULL,
	effective_date    DATETIME NOT NULL,
	created_at        DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at        DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_hotel_attributes_lookup
	ON hotel_attributes (hotel_id, attribute_type_id, generated_by);

CREATE TABLE IF NOT EXISTS scraped_pet_policies (
	id                    INTEGER PRIMARY KEY AUTOINCREMENT,
	hotel_id              TEXT REFERENCES hotels(id),
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
	created_at            DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at            DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS hotel_mapped_url (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
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
	pet_attributes TEXT,
	created_at     DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ResolveAttributeTypes(ctx context.Context, names []string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	for _, name := range names {
		var id string
		err := s.db.QueryRowContext(ctx,
			`SELECT id FROM attribute_types WHERE name = ?`, name,
		).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, eris.Wrapf(err, "sqlite: resolve attribute type %s", name)
		}
		out[name] = id
	}
	return out, nil
}

func (s *SQLiteStore) RemapSlugs(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE scraped_pet_policies
		SET hotel_id = (SELECT h.id FROM hotels h WHERE h.slug = scraped_pet_policies.web_slug),
		    updated_at = datetime('now')
		WHERE web_slug IN (SELECT slug FROM hotels)`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: remap slugs")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: remap slugs rows affected")
	}
	return n, nil
}

func (s *SQLiteStore) ListScrapedHotels(ctx context.Context) ([]model.ScrapedHotel, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT hotel_id, is_pet_friendly, pet_fee_night, pet_fee_total_max,
			pet_fee_interval, max_pets, allowed_pet_types, breed_restrictions, has_pet_deposit,
			is_deposit_refundable, pet_fee_currency, pet_fee_variations, pet_amenities,
			has_pet_amenities, pet_policy, pet_fee_deposit
		FROM scraped_pet_policies
		WHERE hotel_id IS NOT NULL
		ORDER BY id`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list scraped hotels")
	}
	defer rows.Close()

	var hotels []model.ScrapedHotel
	for rows.Next() {
		var h model.ScrapedHotel
		if err := rows.Scan(&h.HotelID, &h.IsPetFriendly, &h.PetFeeNight, &h.PetFeeTotalMax,
			&h.PetFeeInterval, &h.MaxPets, &h.AllowedPetTypes, &h.BreedRestrictions,
			&h.HasPetDeposit, &h.IsDepositRefundable, &h.PetFeeCurrency, &h.PetFeeVariations,
			&h.PetAmenities, &h.HasPetAmenities, &h.PetPolicy, &h.PetFeeDeposit); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan scraped hotel")
		}
		hotels = append(hotels, h)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate scraped hotels")
	}
	return hotels, nil
}

func (s *SQLiteStore) WithHotelTx(ctx context.Context, fn func(w AttributeWriter) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	w := &sqliteWriter{tx: tx}
	if err := fn(w); err != nil {
		_ = tx.Rollback()
		return err
	}
	return eris.Wrap(tx.Commit(), "sqlite: commit tx")
}

type sqliteWriter struct {
	tx *sql.Tx
}

func (w *sqliteWriter) UpsertAttribute(ctx context.Context, up AttributeUpsert) (UpsertResult, error) {
	now := time.Now().UTC()
	text := up.TextValue()

	var arr *string
	if up.ValueArr != nil {
		b, err := json.Marshal(up.ValueArr)
		if err != nil {
			return ResultSkipped, eris.Wrap(err, "sqlite: marshal value_arr")
		}
		s := string(b)
		arr = &s
	}

	res, err := w.tx.ExecContext(ctx, `
		UPDATE hotel_attributes
		SET value = ?, value_bool = ?, value_int = ?, value_num = ?, value_arr = ?,
			confidence = ?, enabled = ?, is_null = ?, is_invalid = ?, updated_at = ?
		WHERE hotel_id = ? AND attribute_type_id = ? AND generated_by = ? AND enabled = 1`,
		text, up.ValueBool, up.ValueInt, up.ValueNum, arr,
		up.Confidence(), up.Enabled(), up.IsNull, up.IsInvalid, now,
		up.HotelID, up.AttributeTypeID, Provenance,
	)
	if err != nil {
		return ResultSkipped, eris.Wrapf(err, "sqlite: update attribute %s", up.Name)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return ResultSkipped, eris.Wrap(err, "sqlite: rows affected")
	}
	if n > 0 {
		return ResultUpdated, nil
	}

	_, err = w.tx.ExecContext(ctx, `
		INSERT INTO hotel_attributes
			(id, hotel_id, attribute_type_id, value, value_bool, value_int, value_num, value_arr,
			 confidence, enabled, is_null, is_invalid, generated_by, created_by, effective_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), up.HotelID, up.AttributeTypeID,
		text, up.ValueBool, up.ValueInt, up.ValueNum, arr,
		up.Confidence(), up.Enabled(), up.IsNull, up.IsInvalid,
		Provenance, "system", now, now, now,
	)
	if err != nil {
		return ResultSkipped, eris.Wrapf(err, "sqlite: insert attribute %s", up.Name)
	}
	return ResultInserted, nil
}

func (s *SQLiteStore) SaveRawExtraction(ctx context.Context, rec model.HotelRecord) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO hotel_mapped_url
			(url, hotel_name, city, state, country, country_code, address_line1, content_hash, web_slug)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (url) DO UPDATE SET
			hotel_name = excluded.hotel_name, city = excluded.city, state = excluded.state,
			country = excluded.country, country_code = excluded.country_code,
			address_line1 = excluded.address_line1, content_hash = excluded.content_hash,
			web_slug = excluded.web_slug, updated_at = datetime('now')
		RETURNING id`,
		rec.URL, rec.HotelName, rec.City, rec.State, rec.Country, rec.CountryCode,
		rec.AddressLine1, rec.Hash, rec.WebSlug,
	).Scan(&id)
	if err != nil {
		return 0, eris.Wrapf(err, "sqlite: save raw extraction %s", rec.URL)
	}
	return id, nil
}

func (s *SQLiteStore) SaveWebContext(ctx context.Context, recordID int64, webContext string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE hotel_mapped_url SET web_context = ?, updated_at = datetime('now') WHERE id = ?`,
		webContext, recordID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: save web context %d", recordID)
	}
	return requireRow(res, recordID)
}

func (s *SQLiteStore) SavePetAttributes(ctx context.Context, recordID int64, result *model.PetPolicyResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal pet attributes")
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE hotel_mapped_url SET pet_attributes = ?, updated_at = datetime('now') WHERE id = ?`,
		string(payload), recordID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: save pet attributes %d", recordID)
	}
	return requireRow(res, recordID)
}

func (s *SQLiteStore) UpdateWebSlug(ctx context.Context, recordID int64, slug string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE hotel_mapped_url SET web_slug = ?, updated_at = datetime('now') WHERE id = ?`,
		slug, recordID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update web slug %d", recordID)
	}
	return requireRow(res, recordID)
}

func (s *SQLiteStore) CheckURLExists(ctx context.Context, url string) (int64, string, bool, error) {
	var id int64
	var hash sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, content_hash FROM hotel_mapped_url
		WHERE url = ? AND web_context IS NOT NULL AND pet_attributes IS NOT NULL`,
		url,
	).Scan(&id, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, "", false, nil
	}
	if err != nil {
		return 0, "", false, eris.Wrapf(err, "sqlite: check url %s", url)
	}
	return id, hash.String, true, nil
}

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("record not found: %d", id)
	}
	return nil
}
