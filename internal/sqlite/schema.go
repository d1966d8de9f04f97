package sqlite

// Schema DDL for all tables.
const (
	createCodes = `CREATE TABLE codes (
    code_id INTEGER PRIMARY KEY AUTOINCREMENT,
    code_name TEXT NOT NULL UNIQUE
);`

	createUtterances = `CREATE TABLE utterances (
    utterance_id INTEGER PRIMARY KEY AUTOINCREMENT,
    code_id INTEGER,
    time_marker INTEGER NOT NULL UNIQUE,
    annotation TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (code_id) REFERENCES codes(code_id)
);`

	createGlobals = `CREATE TABLE globals (
    global_id INTEGER PRIMARY KEY AUTOINCREMENT,
    global_name TEXT NOT NULL UNIQUE,
    response_value INTEGER NOT NULL
);`

	createUtterancesGlobals = `CREATE TABLE utterances_globals (
    utterance_id INTEGER NOT NULL,
    global_id INTEGER NOT NULL,
    PRIMARY KEY (utterance_id, global_id),
    FOREIGN KEY (utterance_id) REFERENCES utterances(utterance_id) ON DELETE CASCADE,
    FOREIGN KEY (global_id) REFERENCES globals(global_id) ON DELETE CASCADE
);`

	createAttributes = `CREATE TABLE attributes (
    name TEXT PRIMARY KEY,
    value TEXT NOT NULL DEFAULT ''
);`
)

// Index DDL for common queries.
const (
	idxUtterancesCode          = `CREATE INDEX idx_utterances_code ON utterances(code_id);`
	idxUtterancesGlobalsGlobal = `CREATE INDEX idx_utterances_globals_global ON utterances_globals(global_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createCodes,
	createUtterances,
	createGlobals,
	createUtterancesGlobals,
	createAttributes,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxUtterancesCode,
	idxUtterancesGlobalsGlobal,
}
