package postgres

// GetMigrations returns all embedded migrations.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_users",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
		{
			Version: 2,
			Name:    "create_modules",
			UpSQL:   migration002Up,
			DownSQL: migration002Down,
		},
		{
			Version: 3,
			Name:    "create_student_tasks",
			UpSQL:   migration003Up,
			DownSQL: migration003Down,
		},
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE USERS
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    display_name VARCHAR(100) NOT NULL DEFAULT '',
    avatar_code VARCHAR(50) NOT NULL DEFAULT '',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);
`

const migration001Down = `
DROP TABLE IF EXISTS users;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 002: CREATE MODULES
// One document per module, games embedded as an array keyed by "code".
// ══════════════════════════════════════════════════════════════════════════════

const migration002Up = `
CREATE TABLE IF NOT EXISTS modules (
    module_code VARCHAR(20) PRIMARY KEY,
    doc JSONB NOT NULL,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT modules_doc_code CHECK (doc->>'moduleCode' = module_code)
);

CREATE INDEX IF NOT EXISTS idx_modules_games ON modules USING GIN ((doc->'games') jsonb_path_ops);
`

const migration002Down = `
DROP TABLE IF EXISTS modules;
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 003: CREATE STUDENT TASKS
// One progress document per student.
// ══════════════════════════════════════════════════════════════════════════════

const migration003Up = `
CREATE TABLE IF NOT EXISTS student_tasks (
    id UUID PRIMARY KEY,
    student_id UUID NOT NULL UNIQUE,
    doc JSONB NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_student_tasks_student_id ON student_tasks(student_id);
`

const migration003Down = `
DROP TABLE IF EXISTS student_tasks;
`
