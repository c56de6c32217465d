package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS sessions (
    id            TEXT PRIMARY KEY,
    note          TEXT NOT NULL,
    date_key      TEXT NOT NULL,
    started_at    TEXT NOT NULL,
    ended_at      TEXT NOT NULL,
    duration_ms   INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date_key);
CREATE INDEX IF NOT EXISTS idx_sessions_ended ON sessions(ended_at);
`
