package postgres

import (
	"context"
	"database/sql"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/draganvukman/task-management/config"
	"github.com/draganvukman/task-management/internal/entities"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedUser(t *testing.T, repo *Postgres, id, email string) *entities.User {
	t.Helper()

	user, err := repo.CreateUser(context.Background(), entities.User{
		ID:           id,
		Email:        email,
		Name:         id,
		Username:     "user_" + id,
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return user
}

func TestRepositoryUsersIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	alice := seedUser(t, repo, "u1", "alice@example.com")
	require.Equal(t, "alice@example.com", alice.Email)
	require.False(t, alice.CreatedAt.IsZero())

	_, err := repo.CreateUser(ctx, entities.User{
		ID: "u1b", Email: "alice@example.com", Username: "user_other", PasswordHash: "x",
	})
	require.ErrorIs(t, err, entities.ErrEmailTaken)

	_, err = repo.CreateUser(ctx, entities.User{
		ID: "u1c", Email: "other@example.com", Username: "user_u1", PasswordHash: "x",
	})
	require.ErrorIs(t, err, entities.ErrUsernameTaken)

	byEmail, err := repo.UserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, alice.ID, byEmail.ID)

	_, err = repo.UserByID(ctx, "ghost")
	require.ErrorIs(t, err, entities.ErrUserNotFound)

	renamed, err := repo.UpdateUserName(ctx, "u1", "Alice A.")
	require.NoError(t, err)
	require.Equal(t, "Alice A.", renamed.Name)
	require.Equal(t, alice.Username, renamed.Username)

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestRepositoryTokensIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	seedUser(t, repo, "u1", "alice@example.com")

	token := entities.RefreshToken{
		Token:     "refresh-1",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.StoreRefreshToken(ctx, token))

	stored, err := repo.RefreshTokenByValue(ctx, "refresh-1")
	require.NoError(t, err)
	require.Equal(t, "u1", stored.UserID)
	require.False(t, stored.Expired(time.Now()))

	require.NoError(t, repo.DeleteRefreshToken(ctx, "refresh-1"))

	_, err = repo.RefreshTokenByValue(ctx, "refresh-1")
	require.ErrorIs(t, err, entities.ErrInvalidToken)

	require.NoError(t, repo.DeleteRefreshToken(ctx, "refresh-1"))
}

func TestRepositoryTeamsIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	seedUser(t, repo, "u1", "alice@example.com")
	seedUser(t, repo, "u2", "bob@example.com")
	seedUser(t, repo, "u3", "carol@example.com")

	team, err := repo.CreateTeam(ctx, "Team X", "u1", []string{"u2"})
	require.NoError(t, err)
	require.Len(t, team.Members, 2)
	require.True(t, team.HasMember("u1"))
	require.True(t, team.HasMember("u2"))

	_, err = repo.CreateTeam(ctx, "Broken", "u1", []string{"ghost"})
	require.ErrorIs(t, err, entities.ErrUserNotFound)

	fetched, err := repo.TeamForMember(ctx, team.ID, "u2")
	require.NoError(t, err)
	require.Equal(t, "Team X", fetched.Name)

	_, err = repo.TeamForMember(ctx, team.ID, "u3")
	require.ErrorIs(t, err, entities.ErrTeamNotFound)

	teams, err := repo.ListTeams(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, teams, 1)

	teams, err = repo.ListTeams(ctx, "u3")
	require.NoError(t, err)
	require.Empty(t, teams)

	// Replacing the member list without the caller re-adds them.
	newName := "Team X2"
	members := []string{"u3"}
	updated, err := repo.UpdateTeam(ctx, team.ID, "u1", entities.TeamUpdate{
		Name:      &newName,
		MemberIDs: &members,
	})
	require.NoError(t, err)
	require.Equal(t, "Team X2", updated.Name)
	require.True(t, updated.HasMember("u1"))
	require.True(t, updated.HasMember("u3"))
	require.False(t, updated.HasMember("u2"))

	_, err = repo.UpdateTeam(ctx, team.ID, "u2", entities.TeamUpdate{Name: &newName})
	require.ErrorIs(t, err, entities.ErrTeamNotFound)

	require.ErrorIs(t, repo.DeleteTeam(ctx, team.ID, "u2"), entities.ErrTeamNotFound)
	require.NoError(t, repo.DeleteTeam(ctx, team.ID, "u1"))

	_, err = repo.TeamForMember(ctx, team.ID, "u1")
	require.ErrorIs(t, err, entities.ErrTeamNotFound)
}

func TestRepositoryTaskVisibilityIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	seedUser(t, repo, "u1", "alice@example.com")
	seedUser(t, repo, "u2", "bob@example.com")
	seedUser(t, repo, "u3", "carol@example.com")

	team, err := repo.CreateTeam(ctx, "Team X", "u1", []string{"u2"})
	require.NoError(t, err)

	report, err := repo.CreateTask(ctx, entities.Task{
		Title:     "Write report",
		Status:    entities.StatusTodo,
		Priority:  entities.PriorityMedium,
		CreatedBy: entities.User{ID: "u1"},
	})
	require.NoError(t, err)
	require.Nil(t, report.Team)
	require.Equal(t, "alice@example.com", report.CreatedBy.Email)

	bug, err := repo.CreateTask(ctx, entities.Task{
		Title:       "Fix bug",
		Description: "crash on empty payload",
		Status:      entities.StatusInProgress,
		Priority:    entities.PriorityHigh,
		CreatedBy:   entities.User{ID: "u1"},
		Team:        team,
	})
	require.NoError(t, err)
	require.NotNil(t, bug.Team)
	require.Len(t, bug.Team.Members, 2)

	// Creator sees both tasks, each exactly once.
	tasks, err := repo.ListTasks(ctx, "u1", entities.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	// A teammate sees only the team task.
	tasks, err = repo.ListTasks(ctx, "u2", entities.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "Fix bug", tasks[0].Title)

	// An outsider sees nothing.
	tasks, err = repo.ListTasks(ctx, "u3", entities.TaskFilter{})
	require.NoError(t, err)
	require.Empty(t, tasks)

	_, err = repo.TaskForUser(ctx, report.ID, "u2")
	require.ErrorIs(t, err, entities.ErrTaskNotFound)

	fromTeammate, err := repo.TaskForUser(ctx, bug.ID, "u2")
	require.NoError(t, err)
	require.Equal(t, bug.ID, fromTeammate.ID)

	require.ErrorIs(t, repo.DeleteTask(ctx, report.ID, "u3"), entities.ErrTaskNotFound)

	_, err = repo.CreateTask(ctx, entities.Task{
		Title:     "Orphan",
		Status:    entities.StatusTodo,
		Priority:  entities.PriorityLow,
		CreatedBy: entities.User{ID: "u1"},
		Team:      &entities.Team{ID: 9999},
	})
	require.ErrorIs(t, err, entities.ErrTeamNotFound)
}

func TestRepositoryTaskFiltersIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	seedUser(t, repo, "u1", "alice@example.com")

	team, err := repo.CreateTeam(ctx, "Team X", "u1", nil)
	require.NoError(t, err)

	march10 := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	march20 := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	_, err = repo.CreateTask(ctx, entities.Task{
		Title: "Write report", Status: entities.StatusTodo, Priority: entities.PriorityMedium,
		DueDate: &march10, CreatedBy: entities.User{ID: "u1"},
	})
	require.NoError(t, err)
	_, err = repo.CreateTask(ctx, entities.Task{
		Title: "Fix bug", Description: "crash on empty payload",
		Status: entities.StatusInProgress, Priority: entities.PriorityHigh,
		DueDate: &march20, CreatedBy: entities.User{ID: "u1"}, Team: team,
	})
	require.NoError(t, err)
	_, err = repo.CreateTask(ctx, entities.Task{
		Title: "Ship release", Status: entities.StatusDone, Priority: entities.PriorityHigh,
		CreatedBy: entities.User{ID: "u1"},
	})
	require.NoError(t, err)

	byStatus, err := repo.ListTasks(ctx, "u1", entities.TaskFilter{Status: entities.StatusInProgress})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	require.Equal(t, "Fix bug", byStatus[0].Title)

	byPriority, err := repo.ListTasks(ctx, "u1", entities.TaskFilter{Priority: entities.PriorityHigh})
	require.NoError(t, err)
	require.Len(t, byPriority, 2)

	byTeam, err := repo.ListTasks(ctx, "u1", entities.TaskFilter{TeamID: team.ID})
	require.NoError(t, err)
	require.Len(t, byTeam, 1)

	byDue, err := repo.ListTasks(ctx, "u1", entities.TaskFilter{DueDate: &march10})
	require.NoError(t, err)
	require.Len(t, byDue, 1)
	require.Equal(t, "Write report", byDue[0].Title)

	byRange, err := repo.ListTasks(ctx, "u1", entities.TaskFilter{DueDateGTE: &march10, DueDateLTE: &march20})
	require.NoError(t, err)
	require.Len(t, byRange, 2)

	bySearch, err := repo.ListTasks(ctx, "u1", entities.TaskFilter{Search: "BUG"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	require.Equal(t, "Fix bug", bySearch[0].Title)

	bySearchDesc, err := repo.ListTasks(ctx, "u1", entities.TaskFilter{Search: "payload"})
	require.NoError(t, err)
	require.Len(t, bySearchDesc, 1)

	combined, err := repo.ListTasks(ctx, "u1", entities.TaskFilter{
		Priority: entities.PriorityHigh,
		Status:   entities.StatusDone,
	})
	require.NoError(t, err)
	require.Len(t, combined, 1)
	require.Equal(t, "Ship release", combined[0].Title)
}

func TestRepositoryTaskOrderingIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	seedUser(t, repo, "u1", "alice@example.com")

	var ids []int64
	for _, title := range []string{"First", "Second", "Third"} {
		task, err := repo.CreateTask(ctx, entities.Task{
			Title: title, Status: entities.StatusTodo, Priority: entities.PriorityMedium,
			CreatedBy: entities.User{ID: "u1"},
		})
		require.NoError(t, err)
		ids = append(ids, task.ID)
	}

	// Pin creation times so the expected order is independent of insert speed.
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	pin := func(id int64, at time.Time) {
		_, err := repo.db.Exec(ctx, `UPDATE tasks SET created_at=$2 WHERE id=$1`, id, at)
		require.NoError(t, err)
	}
	pin(ids[0], base)
	pin(ids[1], base.Add(2*time.Hour))
	pin(ids[2], base.Add(time.Hour))

	tasks, err := repo.ListTasks(ctx, "u1", entities.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	require.Equal(t, "Second", tasks[0].Title)
	require.Equal(t, "Third", tasks[1].Title)
	require.Equal(t, "First", tasks[2].Title)

	// Equal creation times fall back to ascending id.
	pin(ids[0], base.Add(2*time.Hour))

	tasks, err = repo.ListTasks(ctx, "u1", entities.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	require.Equal(t, "First", tasks[0].Title)
	require.Equal(t, "Second", tasks[1].Title)
	require.Equal(t, "Third", tasks[2].Title)
}

func TestRepositoryTaskUpdateIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	seedUser(t, repo, "u1", "alice@example.com")
	seedUser(t, repo, "u2", "bob@example.com")

	team, err := repo.CreateTeam(ctx, "Team X", "u1", []string{"u2"})
	require.NoError(t, err)

	due := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	task, err := repo.CreateTask(ctx, entities.Task{
		Title: "Fix bug", Status: entities.StatusTodo, Priority: entities.PriorityHigh,
		DueDate: &due, CreatedBy: entities.User{ID: "u1"}, Team: team,
	})
	require.NoError(t, err)

	// A teammate may update a task they did not create.
	done := entities.StatusDone
	updated, err := repo.UpdateTask(ctx, task.ID, "u2", entities.TaskUpdate{Status: &done})
	require.NoError(t, err)
	require.Equal(t, entities.StatusDone, updated.Status)

	updated, err = repo.UpdateTask(ctx, task.ID, "u1", entities.TaskUpdate{ClearDue: true})
	require.NoError(t, err)
	require.Nil(t, updated.DueDate)

	// Explicitly clearing the team detaches the task but keeps it visible to
	// the creator.
	updated, err = repo.UpdateTask(ctx, task.ID, "u1", entities.TaskUpdate{SetTeam: true})
	require.NoError(t, err)
	require.Nil(t, updated.Team)

	_, err = repo.TaskForUser(ctx, task.ID, "u2")
	require.ErrorIs(t, err, entities.ErrTaskNotFound)

	_, err = repo.UpdateTask(ctx, task.ID, "u2", entities.TaskUpdate{Status: &done})
	require.ErrorIs(t, err, entities.ErrTaskNotFound)

	teamID := team.ID
	updated, err = repo.UpdateTask(ctx, task.ID, "u1", entities.TaskUpdate{SetTeam: true, TeamID: &teamID})
	require.NoError(t, err)
	require.NotNil(t, updated.Team)
	require.Equal(t, team.ID, updated.Team.ID)
}

func TestRepositoryTeamDeleteKeepsTasksIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	seedUser(t, repo, "u1", "alice@example.com")

	team, err := repo.CreateTeam(ctx, "Team X", "u1", nil)
	require.NoError(t, err)

	task, err := repo.CreateTask(ctx, entities.Task{
		Title: "Fix bug", Status: entities.StatusTodo, Priority: entities.PriorityMedium,
		CreatedBy: entities.User{ID: "u1"}, Team: team,
	})
	require.NoError(t, err)
	require.NotNil(t, task.Team)

	require.NoError(t, repo.DeleteTeam(ctx, team.ID, "u1"))

	survived, err := repo.TaskForUser(ctx, task.ID, "u1")
	require.NoError(t, err)
	require.Nil(t, survived.Team)
}

func setupPostgres(t *testing.T) (*config.Config, func()) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=task_management_db",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
	})
	require.NoError(t, err)

	hostPort := resource.GetPort("5432/tcp")

	port, err := strconv.Atoi(hostPort)
	require.NoError(t, err)
	migrationsDir, err := filepath.Abs(filepath.Join("..", "..", "..", "db", "migrations"))
	require.NoError(t, err)
	require.DirExists(t, migrationsDir)

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "0.0.0.0", Port: 8080, ShutdownTimeout: 5 * time.Second},
		HTTP:   config.HTTPConfig{RequestTimeout: 5 * time.Second},
		Postgres: config.PostgresConfig{
			Host:           "localhost",
			Port:           port,
			User:           "postgres",
			Password:       "postgres",
			DBName:         "task_management_db",
			SSLMode:        "disable",
			MigrationsDir:  migrationsDir,
			QueryTimeout:   10 * time.Second,
			MigrateTimeout: 20 * time.Second,
			MaxConns:       4,
			MinConns:       1,
		},
	}

	require.NoError(t, pool.Retry(func() error {
		db, err := sql.Open("postgres", "host=localhost port="+hostPort+" user=postgres password=postgres dbname=task_management_db sslmode=disable")
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return db.Ping()
	}))

	cleanup := func() {
		_ = pool.Purge(resource)
	}

	return cfg, cleanup
}

func testLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()

	l, _ := zap.NewDevelopment()
	t.Cleanup(func() { _ = l.Sync() })
	return l.Sugar()
}
