package progress

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alem-hub/learning-progress/internal/domain/shared"

	"github.com/google/uuid"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// ModuleCode identifies a curriculum module.
type ModuleCode string

// ModuleMD01 is the only module a progress record tracks today.
const ModuleMD01 ModuleCode = "MD01"

// GameCode identifies one game inside a module.
type GameCode string

const (
	GameGM01 GameCode = "GM01"
	GameGM02 GameCode = "GM02"
	GameGM03 GameCode = "GM03"
	GameGM04 GameCode = "GM04"
)

// ShareFlag records whether a badge has been shared. Values are "YES" or "NO".
type ShareFlag string

const (
	Shared    ShareFlag = "YES"
	NotShared ShareFlag = "NO"
)

// IsShared reports whether the flag is "YES".
func (f ShareFlag) IsShared() bool {
	return f == Shared
}

// ══════════════════════════════════════════════════════════════════════════════
// RECORD
// ══════════════════════════════════════════════════════════════════════════════

// Record is the persisted per-student progress document.
// JSON field names follow the stored document layout.
type Record struct {
	ID          uuid.UUID   `json:"_id"`
	StudentName string      `json:"studentName"`
	StudentID   uuid.UUID   `json:"studentId"`
	Moods       []MoodEntry `json:"moods"`
	Module1     Module1     `json:"module1"`
}

// MoodEntry is one recorded mood.
type MoodEntry struct {
	Date time.Time `json:"date"`
	Mood string    `json:"mood"`
}

// Module1 holds the fixed set of game slots for module MD01.
// Game2 is a pointer: older documents may lack it and readers must check.
type Module1 struct {
	ModuleCode ModuleCode    `json:"moduleCode"`
	Game1      TaskGame      `json:"game1"`
	Game2      *MindMapGame  `json:"game2,omitempty"`
	Game3      QandAGame     `json:"game3"`
	Game4      BreathingGame `json:"game4"`
}

// GameState is the part every game slot shares.
type GameState struct {
	GameCode     GameCode  `json:"gameCode"`
	GamePoints   int       `json:"gamePoints"`
	Badge1Shared ShareFlag `json:"badge1Shared"`
	Badge2Shared ShareFlag `json:"badge2Shared"`
	Badge3Shared ShareFlag `json:"badge3Shared"`
}

func newGameState(code GameCode) GameState {
	return GameState{
		GameCode:     code,
		GamePoints:   0,
		Badge1Shared: NotShared,
		Badge2Shared: NotShared,
		Badge3Shared: NotShared,
	}
}

// TaskGame is game1: task completion.
type TaskGame struct {
	GameState
	Tasks []Task `json:"tasks"`
}

// Task is a single game1 task.
type Task struct {
	ID                 string    `json:"_id,omitempty"`
	Name               string    `json:"name,omitempty"`
	Description        string    `json:"description,omitempty"`
	Date               time.Time `json:"date"`
	Status             string    `json:"status,omitempty"`
	CompletePercentage float64   `json:"completePercentage,omitempty"`
	Points             int       `json:"points,omitempty"`
}

// MindMapGame is game2. Mind map entries are stored opaquely.
type MindMapGame struct {
	GameState
	MindMaps []json.RawMessage `json:"mindMaps"`
}

// QandAGame is game3: questions and answers that other students can like.
type QandAGame struct {
	GameState
	QandA []QandA `json:"QandA"`
}

// QandA is a single game3 entry.
type QandA struct {
	ID       string   `json:"_id,omitempty"`
	Question string   `json:"question,omitempty"`
	Answer   string   `json:"answer,omitempty"`
	Likes    []string `json:"likes,omitempty"`
}

// LikeCount returns the number of likes; a missing list counts as zero.
func (q QandA) LikeCount() int {
	return len(q.Likes)
}

func newMindMapGame() *MindMapGame {
	return &MindMapGame{
		GameState: newGameState(GameGM02),
		MindMaps:  []json.RawMessage{},
	}
}

// BreathingGame is game4. Practise entries are stored opaquely.
type BreathingGame struct {
	GameState
	BreathingPractises []json.RawMessage `json:"breathingPractises"`
}

// HasGame2 reports whether the record carries a game2 slot.
func (r *Record) HasGame2() bool {
	return r != nil && r.Module1.Game2 != nil
}

// ══════════════════════════════════════════════════════════════════════════════
// CONSTRUCTION
// ══════════════════════════════════════════════════════════════════════════════

// NewRecordParams contains the inputs for a new progress record.
type NewRecordParams struct {
	// StudentID must be a valid UUID.
	StudentID string

	// StudentName is optional and defaults to "".
	StudentName string
}

// NewRecord builds the initial progress record for a student.
// It does not persist anything.
func NewRecord(params NewRecordParams) (*Record, error) {
	studentID, err := uuid.Parse(params.StudentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidStudentID, err)
	}

	return &Record{
		ID:          uuid.New(),
		StudentName: params.StudentName,
		StudentID:   studentID,
		Moods:       []MoodEntry{},
		Module1: Module1{
			ModuleCode: ModuleMD01,
			Game1: TaskGame{
				GameState: newGameState(GameGM01),
				Tasks:     []Task{},
			},
			Game2: newMindMapGame(),
			Game3: QandAGame{
				GameState: newGameState(GameGM03),
				QandA:     []QandA{},
			},
			Game4: BreathingGame{
				GameState:          newGameState(GameGM04),
				BreathingPractises: []json.RawMessage{},
			},
		},
	}, nil
}
