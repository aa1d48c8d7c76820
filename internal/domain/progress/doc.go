// Package progress contains the domain model of a student's gamified
// learning progress in module MD01.
//
// The package defines:
//
//   - Record: the per-student progress document with four fixed game slots
//   - NewRecord: the canonical initial shape of a record
//   - CompleteMoodWindow: a gap-filled daily mood calendar
//   - TotalMarks, Game3TotalLikes: score aggregation
//   - ResolveBadge: the static (game, badge) share table
//   - Repository: the storage contract implemented in infrastructure
//
// Everything here except Repository is pure and performs no I/O.
//
// # Example
//
//	record, err := progress.NewRecord(progress.NewRecordParams{
//	    StudentID:   studentID,
//	    StudentName: "Aigerim",
//	})
//	if err != nil {
//	    return err
//	}
//
//	field, ok := progress.ResolveBadge(progress.GameGM01, progress.BadgeBDG01)
//	if ok {
//	    _, err = repo.SetBadgeShared(ctx, record.ID, field)
//	}
package progress
