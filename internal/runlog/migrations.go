package runlog

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    timestamp TIMESTAMP NOT NULL,
    url TEXT NOT NULL,
    status TEXT NOT NULL,
    error TEXT,
    screenshot TEXT,
    duration_ms INTEGER
);

CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_runs_url ON runs(url);
CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
`
