package sqlite

// schema is the full DDL. Statements are idempotent so Migrate can run on
// every start. Dates are stored as YYYY-MM-DD text, timestamps as RFC 3339.
const schema = `
CREATE TABLE IF NOT EXISTS divisions (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	color       TEXT NOT NULL DEFAULT '',
	active      INTEGER NOT NULL DEFAULT 1,
	created_at  TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_divisions_active_name
	ON divisions (name) WHERE active = 1;

CREATE TABLE IF NOT EXISTS routes (
	id             TEXT PRIMARY KEY,
	division_id    TEXT NOT NULL REFERENCES divisions (id),
	name           TEXT NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	active         INTEGER NOT NULL DEFAULT 1,
	total_sla_days INTEGER NOT NULL DEFAULT 0 CHECK (total_sla_days >= 0),
	stage_a_days   INTEGER NOT NULL DEFAULT 0 CHECK (stage_a_days >= 0),
	stage_b_days   INTEGER NOT NULL DEFAULT 0 CHECK (stage_b_days >= 0),
	stage_c_days   INTEGER NOT NULL DEFAULT 0 CHECK (stage_c_days >= 0),
	stage_d_days   INTEGER NOT NULL DEFAULT 0 CHECK (stage_d_days >= 0),
	created_at     TEXT NOT NULL,
	UNIQUE (division_id, name)
);

CREATE TABLE IF NOT EXISTS committee_types (
	id                TEXT PRIMARY KEY,
	division_id       TEXT NOT NULL REFERENCES divisions (id),
	name              TEXT NOT NULL,
	description       TEXT NOT NULL DEFAULT '',
	scheduled_weekday INTEGER NOT NULL CHECK (scheduled_weekday BETWEEN 0 AND 6),
	frequency         TEXT NOT NULL CHECK (frequency IN ('weekly', 'monthly')),
	week_of_month     INTEGER CHECK (week_of_month BETWEEN 1 AND 5),
	active            INTEGER NOT NULL DEFAULT 1,
	created_at        TEXT NOT NULL,
	UNIQUE (division_id, name),
	CHECK ((frequency = 'monthly') = (week_of_month IS NOT NULL))
);

CREATE TABLE IF NOT EXISTS exception_dates (
	id          TEXT PRIMARY KEY,
	date        TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT '',
	kind        TEXT NOT NULL DEFAULT 'holiday',
	created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS meetings (
	id                TEXT PRIMARY KEY,
	committee_type_id TEXT NOT NULL REFERENCES committee_types (id),
	division_id       TEXT NOT NULL REFERENCES divisions (id),
	date              TEXT NOT NULL,
	status            TEXT NOT NULL CHECK (status IN ('planned', 'scheduled', 'completed', 'cancelled')),
	exception_date_id TEXT REFERENCES exception_dates (id),
	notes             TEXT NOT NULL DEFAULT '',
	created_at        TEXT NOT NULL,
	updated_at        TEXT NOT NULL
);

-- At most one non-cancelled meeting per committee type, division and date.
CREATE UNIQUE INDEX IF NOT EXISTS idx_meetings_active_slot
	ON meetings (committee_type_id, division_id, date) WHERE status != 'cancelled';

CREATE INDEX IF NOT EXISTS idx_meetings_date ON meetings (date);

CREATE TABLE IF NOT EXISTS events (
	id                    TEXT PRIMARY KEY,
	meeting_id            TEXT NOT NULL REFERENCES meetings (id),
	route_id              TEXT NOT NULL REFERENCES routes (id),
	name                  TEXT NOT NULL,
	expected_requests     INTEGER NOT NULL DEFAULT 0 CHECK (expected_requests >= 0),
	call_publication_date TEXT,
	call_deadline         TEXT,
	intake_deadline       TEXT,
	review_deadline       TEXT,
	response_deadline     TEXT,
	created_at            TEXT NOT NULL,
	updated_at            TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_meeting ON events (meeting_id);

CREATE TABLE IF NOT EXISTS settings (
	id                             INTEGER PRIMARY KEY CHECK (id = 1),
	work_weekdays                  TEXT NOT NULL,
	week_start                     INTEGER NOT NULL DEFAULT 0,
	max_meetings_per_day           INTEGER NOT NULL DEFAULT 0,
	max_meetings_per_standard_week INTEGER NOT NULL DEFAULT 0,
	max_meetings_per_third_week    INTEGER NOT NULL DEFAULT 0,
	max_requests_per_day           INTEGER NOT NULL DEFAULT 0,
	default_sla_days               INTEGER NOT NULL DEFAULT 0,
	weights                        TEXT NOT NULL DEFAULT '{}'
);
`
