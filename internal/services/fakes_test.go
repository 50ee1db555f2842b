package services

import (
	"context"
	"sort"
	"time"

	"github.com/Adilet2201/Wellness_Tracker/internal/models"
	"github.com/Adilet2201/Wellness_Tracker/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeUserStore is an in-memory stand-in for the users collection. It
// implements PointsStore, UserStore and LeaderboardStore.
type fakeUserStore struct {
	users  map[primitive.ObjectID]*models.User
	incErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserStore) addUser(user *models.User) *models.User {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return nil, apperrors.E(apperrors.KindConflict, "email already registered")
		}
	}
	return f.addUser(user), nil
}

func (f *fakeUserStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.E(apperrors.KindNotFound, "user not found")
	}
	return user, nil
}

func (f *fakeUserStore) UpdateUser(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.E(apperrors.KindNotFound, "user not found")
	}
	if name, ok := update["name"].(string); ok {
		user.Name = name
	}
	return user, nil
}

func (f *fakeUserStore) IncrementPoints(ctx context.Context, id primitive.ObjectID, delta int) (*models.User, error) {
	if f.incErr != nil {
		return nil, f.incErr
	}
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.E(apperrors.KindNotFound, "user not found")
	}
	user.TotalPoints += delta
	return user, nil
}

func (f *fakeUserStore) SetPoints(ctx context.Context, id primitive.ObjectID, points int) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.E(apperrors.KindNotFound, "user not found")
	}
	user.TotalPoints = points
	return user, nil
}

func (f *fakeUserStore) GetTopByPoints(ctx context.Context, limit int64) ([]models.User, error) {
	var users []models.User
	for _, user := range f.users {
		if user.Role == models.RoleUser {
			users = append(users, *user)
		}
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].TotalPoints > users[j].TotalPoints
	})
	if int64(len(users)) > limit {
		users = users[:limit]
	}
	return users, nil
}

// fakeHabitStore is an in-memory stand-in for the habits and habit_logs
// collections, enforcing the per-day log uniqueness the real index does.
type fakeHabitStore struct {
	habits map[primitive.ObjectID]*models.Habit
	logs   map[primitive.ObjectID]*models.HabitLog
}

func newFakeHabitStore() *fakeHabitStore {
	return &fakeHabitStore{
		habits: make(map[primitive.ObjectID]*models.Habit),
		logs:   make(map[primitive.ObjectID]*models.HabitLog),
	}
}

func (f *fakeHabitStore) CreateHabit(ctx context.Context, habit *models.Habit) (*models.Habit, error) {
	habit.ID = primitive.NewObjectID()
	habit.CreatedAt = time.Now()
	f.habits[habit.ID] = habit
	return habit, nil
}

func (f *fakeHabitStore) GetHabitByID(ctx context.Context, id primitive.ObjectID) (*models.Habit, error) {
	habit, ok := f.habits[id]
	if !ok {
		return nil, apperrors.E(apperrors.KindNotFound, "habit not found")
	}
	copied := *habit
	return &copied, nil
}

func (f *fakeHabitStore) GetHabitsByUser(ctx context.Context, userID primitive.ObjectID, activeOnly bool) ([]models.Habit, error) {
	var habits []models.Habit
	for _, habit := range f.habits {
		if habit.UserID != userID {
			continue
		}
		if activeOnly && !habit.IsActive {
			continue
		}
		habits = append(habits, *habit)
	}
	return habits, nil
}

func (f *fakeHabitStore) UpdateHabit(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Habit, error) {
	habit, ok := f.habits[id]
	if !ok {
		return nil, apperrors.E(apperrors.KindNotFound, "habit not found")
	}
	if streak, ok := update["current_streak"].(int); ok {
		habit.CurrentStreak = streak
	}
	if last, ok := update["last_logged_date"].(time.Time); ok {
		habit.LastLoggedDate = &last
	}
	if title, ok := update["title"].(string); ok {
		habit.Title = title
	}
	if active, ok := update["is_active"].(bool); ok {
		habit.IsActive = active
	}
	copied := *habit
	return &copied, nil
}

func (f *fakeHabitStore) DeleteHabit(ctx context.Context, id primitive.ObjectID) error {
	delete(f.habits, id)
	return nil
}

func (f *fakeHabitStore) FindLog(ctx context.Context, habitID, userID primitive.ObjectID, date time.Time) (*models.HabitLog, error) {
	for _, log := range f.logs {
		if log.HabitID == habitID && log.UserID == userID && log.Date.Equal(date) {
			copied := *log
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeHabitStore) CreateLog(ctx context.Context, log *models.HabitLog) (*models.HabitLog, error) {
	for _, existing := range f.logs {
		if existing.HabitID == log.HabitID && existing.UserID == log.UserID && existing.Date.Equal(log.Date) {
			return nil, apperrors.E(apperrors.KindConflict, "habit already logged for this date")
		}
	}
	log.ID = primitive.NewObjectID()
	log.CreatedAt = time.Now()
	f.logs[log.ID] = log
	return log, nil
}

func (f *fakeHabitStore) DeleteLog(ctx context.Context, id primitive.ObjectID) error {
	delete(f.logs, id)
	return nil
}

func (f *fakeHabitStore) GetLogsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.HabitLog, error) {
	var logs []models.HabitLog
	for _, log := range f.logs {
		if log.UserID == userID {
			logs = append(logs, *log)
		}
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].Date.After(logs[j].Date) })
	return logs, nil
}

// fakeWorkoutStore is an in-memory stand-in for the workouts and
// workout_logs collections.
type fakeWorkoutStore struct {
	workouts map[primitive.ObjectID]*models.Workout
	logs     []*models.WorkoutLog
}

func newFakeWorkoutStore() *fakeWorkoutStore {
	return &fakeWorkoutStore{workouts: make(map[primitive.ObjectID]*models.Workout)}
}

func (f *fakeWorkoutStore) CreateWorkout(ctx context.Context, workout *models.Workout) (*models.Workout, error) {
	workout.ID = primitive.NewObjectID()
	workout.CreatedAt = time.Now()
	f.workouts[workout.ID] = workout
	return workout, nil
}

func (f *fakeWorkoutStore) GetWorkoutByID(ctx context.Context, id primitive.ObjectID) (*models.Workout, error) {
	workout, ok := f.workouts[id]
	if !ok {
		return nil, apperrors.E(apperrors.KindNotFound, "workout not found")
	}
	return workout, nil
}

func (f *fakeWorkoutStore) GetWorkoutsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Workout, error) {
	var workouts []models.Workout
	for _, workout := range f.workouts {
		if workout.UserID == userID {
			workouts = append(workouts, *workout)
		}
	}
	return workouts, nil
}

func (f *fakeWorkoutStore) CreateLog(ctx context.Context, log *models.WorkoutLog) (*models.WorkoutLog, error) {
	log.ID = primitive.NewObjectID()
	log.CreatedAt = time.Now()
	f.logs = append(f.logs, log)
	return log, nil
}

func (f *fakeWorkoutStore) GetLogsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.WorkoutLog, error) {
	var logs []models.WorkoutLog
	for _, log := range f.logs {
		if log.UserID == userID {
			logs = append(logs, *log)
		}
	}
	return logs, nil
}

// fakeChallengeStore is an in-memory stand-in for the challenges and
// challenge_participants collections, enforcing join uniqueness.
type fakeChallengeStore struct {
	challenges   map[primitive.ObjectID]*models.Challenge
	participants map[primitive.ObjectID]*models.ChallengeParticipant
}

func newFakeChallengeStore() *fakeChallengeStore {
	return &fakeChallengeStore{
		challenges:   make(map[primitive.ObjectID]*models.Challenge),
		participants: make(map[primitive.ObjectID]*models.ChallengeParticipant),
	}
}

func (f *fakeChallengeStore) CreateChallenge(ctx context.Context, challenge *models.Challenge) (*models.Challenge, error) {
	challenge.ID = primitive.NewObjectID()
	challenge.CreatedAt = time.Now()
	f.challenges[challenge.ID] = challenge
	return challenge, nil
}

func (f *fakeChallengeStore) GetChallengeByID(ctx context.Context, id primitive.ObjectID) (*models.Challenge, error) {
	challenge, ok := f.challenges[id]
	if !ok {
		return nil, apperrors.E(apperrors.KindNotFound, "challenge not found")
	}
	return challenge, nil
}

func (f *fakeChallengeStore) GetActiveChallenges(ctx context.Context) ([]models.Challenge, error) {
	var challenges []models.Challenge
	for _, challenge := range f.challenges {
		if challenge.IsActive {
			challenges = append(challenges, *challenge)
		}
	}
	return challenges, nil
}

func (f *fakeChallengeStore) GetChallengesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Challenge, error) {
	var challenges []models.Challenge
	for _, id := range ids {
		if challenge, ok := f.challenges[id]; ok {
			challenges = append(challenges, *challenge)
		}
	}
	return challenges, nil
}

func (f *fakeChallengeStore) DeactivateExpired(ctx context.Context, before time.Time) (int64, error) {
	var count int64
	for _, challenge := range f.challenges {
		if challenge.IsActive && challenge.EndDate.Before(before) {
			challenge.IsActive = false
			count++
		}
	}
	return count, nil
}

func (f *fakeChallengeStore) CreateParticipant(ctx context.Context, participant *models.ChallengeParticipant) (*models.ChallengeParticipant, error) {
	for _, existing := range f.participants {
		if existing.ChallengeID == participant.ChallengeID && existing.UserID == participant.UserID {
			return nil, apperrors.E(apperrors.KindConflict, "already joined this challenge")
		}
	}
	participant.ID = primitive.NewObjectID()
	participant.JoinedAt = time.Now()
	f.participants[participant.ID] = participant
	return participant, nil
}

func (f *fakeChallengeStore) FindParticipant(ctx context.Context, challengeID, userID primitive.ObjectID) (*models.ChallengeParticipant, error) {
	for _, participant := range f.participants {
		if participant.ChallengeID == challengeID && participant.UserID == userID {
			copied := *participant
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeChallengeStore) UpdateParticipant(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.ChallengeParticipant, error) {
	participant, ok := f.participants[id]
	if !ok {
		return nil, apperrors.E(apperrors.KindNotFound, "participant not found")
	}
	if progress, ok := update["progress"].(int); ok {
		participant.Progress = progress
	}
	if completed, ok := update["completed"].(bool); ok {
		participant.Completed = completed
	}
	if earned, ok := update["points_earned"].(int); ok {
		participant.PointsEarned = earned
	}
	if at, ok := update["completed_at"].(time.Time); ok {
		participant.CompletedAt = &at
	}
	copied := *participant
	return &copied, nil
}

func (f *fakeChallengeStore) GetParticipantsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.ChallengeParticipant, error) {
	var participants []models.ChallengeParticipant
	for _, participant := range f.participants {
		if participant.UserID == userID {
			participants = append(participants, *participant)
		}
	}
	return participants, nil
}
