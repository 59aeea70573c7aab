package gateway

import (
	"context"
	"time"

	"teamchat-client/model"

	"github.com/google/uuid"
)

// ListTeamMembers returns the roster of one team.
func (g *Postgres) ListTeamMembers(ctx context.Context, teamID string) ([]model.TeamMember, error) {
	var rows []model.TeamMember
	err := g.DB.WithContext(ctx).
		Where(&model.TeamMember{TeamID: teamID}).
		Order("joined_at asc").
		Find(&rows).Error
	return rows, err
}

func (g *Postgres) AddTeamMember(ctx context.Context, teamID, userID, role string) error {
	member := model.TeamMember{
		TeamID:   teamID,
		UserID:   userID,
		Role:     role,
		JoinedAt: time.Now().UTC(),
	}
	return g.DB.WithContext(ctx).Create(&member).Error
}

func (g *Postgres) RemoveTeamMember(ctx context.Context, teamID, userID string) error {
	res := g.DB.WithContext(ctx).
		Delete(&model.TeamMember{TeamID: teamID, UserID: userID})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CheckIn opens today's attendance record for a user; repeated check-ins on
// the same day return the existing record.
func (g *Postgres) CheckIn(ctx context.Context, teamID, userID string) (*model.AttendanceRecord, error) {
	day := time.Now().UTC().Format("2006-01-02")

	existing := new(model.AttendanceRecord)
	err := g.DB.WithContext(ctx).
		Where(&model.AttendanceRecord{UserID: userID, TeamID: teamID, Day: day}).
		First(&existing).Error
	if err == nil {
		return existing, nil
	}

	record := &model.AttendanceRecord{
		ID:      uuid.NewString(),
		UserID:  userID,
		TeamID:  teamID,
		Day:     day,
		CheckIn: time.Now().UTC(),
	}
	if err := g.DB.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// CheckOut closes today's attendance record.
func (g *Postgres) CheckOut(ctx context.Context, teamID, userID string) error {
	day := time.Now().UTC().Format("2006-01-02")
	now := time.Now().UTC()
	res := g.DB.WithContext(ctx).
		Model(&model.AttendanceRecord{}).
		Where(&model.AttendanceRecord{UserID: userID, TeamID: teamID, Day: day}).
		Update("check_out", &now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AttendanceForDay lists a team's records for one day (YYYY-MM-DD).
func (g *Postgres) AttendanceForDay(ctx context.Context, teamID, day string) ([]model.AttendanceRecord, error) {
	var rows []model.AttendanceRecord
	err := g.DB.WithContext(ctx).
		Where(&model.AttendanceRecord{TeamID: teamID, Day: day}).
		Order("check_in asc").
		Find(&rows).Error
	return rows, err
}
