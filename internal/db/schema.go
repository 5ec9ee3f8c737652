package db

// Schema is bootstrapped at startup; statements are idempotent so a
// restart against an existing database is a no-op.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	email         TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS preferences (
	user_id        BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
	favorite_teams JSONB NOT NULL DEFAULT '[]',
	bet_types      JSONB NOT NULL DEFAULT '[]',
	risk_tolerance TEXT NOT NULL DEFAULT 'moderate',
	bankroll       DOUBLE PRECISION NOT NULL DEFAULT 0,
	team_focus     JSONB NOT NULL DEFAULT '[]',
	avoid_teams    JSONB NOT NULL DEFAULT '[]',
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS parlays (
	id               BIGSERIAL PRIMARY KEY,
	user_id          BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name             TEXT NOT NULL,
	legs             JSONB NOT NULL,
	estimated_odds   DOUBLE PRECISION NOT NULL,
	estimated_payout DOUBLE PRECISION NOT NULL,
	stake            DOUBLE PRECISION NOT NULL,
	status           TEXT NOT NULL DEFAULT 'saved',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_parlays_user_created
	ON parlays (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS suggestion_history (
	id         BIGSERIAL PRIMARY KEY,
	user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	legs       JSONB NOT NULL,
	analysis   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_suggestion_history_user
	ON suggestion_history (user_id, created_at DESC);
`
