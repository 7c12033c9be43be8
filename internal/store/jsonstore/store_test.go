package jsonstore

import (
	"errors"
	"testing"

	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/store"
)

func newStore(t *testing.T) (*Store, string) {
	t.Helper()

	dir := t.TempDir()
	s, err := Open(dir)

	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	return s, dir
}

func insertUser(t *testing.T, s *Store, email string) models.User {
	t.Helper()

	user, err := s.InsertUser(models.User{
		Name:         "Test User",
		Email:        email,
		Role:         "Team Member",
		PasswordHash: "hash",
	})

	if err != nil {
		t.Fatalf("InsertUser(%q) failed: %v", email, err)
	}

	return user
}

func insertProject(t *testing.T, s *Store, name string) models.Project {
	t.Helper()

	project, err := s.InsertProject(models.Project{Name: name})

	if err != nil {
		t.Fatalf("InsertProject(%q) failed: %v", name, err)
	}

	return project
}

func insertTask(t *testing.T, s *Store, projectID uint, name string) models.Task {
	t.Helper()

	task, err := s.InsertTask(models.Task{
		ProjectID: projectID,
		Name:      name,
		Status:    "not-started",
	})

	if err != nil {
		t.Fatalf("InsertTask(%q) failed: %v", name, err)
	}

	return task
}

func TestInsertUserAssignsSequentialIDs(t *testing.T) {
	s, _ := newStore(t)

	first := insertUser(t, s, "a@x.com")
	second := insertUser(t, s, "b@x.com")

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("ids = %d, %d; want 1, 2", first.ID, second.ID)
	}

	// Deleting a lower id must not cause reuse of the highest one.
	if err := s.DeleteUser(first.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	third := insertUser(t, s, "c@x.com")

	if third.ID != 3 {
		t.Errorf("id after delete = %d, want 3", third.ID)
	}
}

func TestInsertUserDuplicateEmail(t *testing.T) {
	s, _ := newStore(t)

	insertUser(t, s, "a@x.com")

	_, err := s.InsertUser(models.User{Email: "a@x.com", PasswordHash: "hash"})

	if !errors.Is(err, store.ErrDuplicateEmail) {
		t.Errorf("err = %v, want ErrDuplicateEmail", err)
	}

	users, err := s.ListUsers()

	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}

	if len(users) != 1 {
		t.Errorf("user count = %d, want 1 (no duplicate record)", len(users))
	}
}

func TestUpdateUserEmailConflict(t *testing.T) {
	s, _ := newStore(t)

	insertUser(t, s, "a@x.com")
	second := insertUser(t, s, "b@x.com")

	_, err := s.UpdateUser(second.ID, store.UserUpdate{Email: "a@x.com"})

	if !errors.Is(err, store.ErrDuplicateEmail) {
		t.Errorf("err = %v, want ErrDuplicateEmail", err)
	}
}

func TestUpdateUserNotFound(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.UpdateUser(42, store.UserUpdate{Name: "Nobody"})

	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteUserNotFound(t *testing.T) {
	s, _ := newStore(t)

	if err := s.DeleteUser(42); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateUserNeverTouchesCredential(t *testing.T) {
	s, _ := newStore(t)

	created := insertUser(t, s, "a@x.com")

	updated, err := s.UpdateUser(created.ID, store.UserUpdate{
		Name:  "Renamed",
		Email: "renamed@x.com",
		Role:  "Admin",
	})

	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}

	if updated.PasswordHash != created.PasswordHash {
		t.Error("update changed credential material")
	}

	if updated.Name != "Renamed" || updated.Email != "renamed@x.com" || updated.Role != "Admin" {
		t.Errorf("unexpected updated record: %+v", updated)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	s, dir := newStore(t)

	insertUser(t, s, "a@x.com")
	project := insertProject(t, s, "Launch")
	insertTask(t, s, project.ID, "Write docs")

	reopened, err := Open(dir)

	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}

	user, err := reopened.FindUserByEmail("a@x.com")

	if err != nil {
		t.Fatalf("FindUserByEmail after reopen failed: %v", err)
	}

	if user.PasswordHash != "hash" {
		t.Errorf("PasswordHash = %q, want %q", user.PasswordHash, "hash")
	}

	tasks, err := reopened.ListTasksByProject(project.ID)

	if err != nil {
		t.Fatalf("ListTasksByProject after reopen failed: %v", err)
	}

	if len(tasks) != 1 || tasks[0].Name != "Write docs" {
		t.Errorf("unexpected tasks after reopen: %+v", tasks)
	}
}

func TestFindUserByEmailIsCaseSensitive(t *testing.T) {
	s, _ := newStore(t)

	insertUser(t, s, "a@x.com")

	if _, err := s.FindUserByEmail("A@X.com"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for different casing", err)
	}
}

func TestInsertTaskUnknownProject(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.InsertTask(models.Task{ProjectID: 99, Name: "Orphan"})

	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteProjectCascadesTasks(t *testing.T) {
	s, _ := newStore(t)

	doomed := insertProject(t, s, "Doomed")
	survivor := insertProject(t, s, "Survivor")

	insertTask(t, s, doomed.ID, "one")
	insertTask(t, s, doomed.ID, "two")
	kept := insertTask(t, s, survivor.ID, "three")

	if err := s.DeleteProject(doomed.ID); err != nil {
		t.Fatalf("DeleteProject failed: %v", err)
	}

	if _, err := s.FindProjectByID(doomed.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("project still present after delete: %v", err)
	}

	orphans, err := s.ListTasksByProject(doomed.ID)

	if err != nil {
		t.Fatalf("ListTasksByProject failed: %v", err)
	}

	if len(orphans) != 0 {
		t.Errorf("stale tasks after cascade: %+v", orphans)
	}

	remaining, err := s.ListTasksByProject(survivor.ID)

	if err != nil {
		t.Fatalf("ListTasksByProject failed: %v", err)
	}

	if len(remaining) != 1 || remaining[0].ID != kept.ID {
		t.Errorf("survivor tasks = %+v, want only task %d", remaining, kept.ID)
	}
}

func TestDeleteTaskRemovesFromProjectList(t *testing.T) {
	s, _ := newStore(t)

	project := insertProject(t, s, "Launch")
	task := insertTask(t, s, project.ID, "ship it")

	if err := s.DeleteTask(task.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	tasks, err := s.ListTasksByProject(project.ID)

	if err != nil {
		t.Fatalf("ListTasksByProject failed: %v", err)
	}

	if len(tasks) != 0 {
		t.Errorf("tasks = %+v, want empty", tasks)
	}

	loaded, err := s.FindProjectByID(project.ID)

	if err != nil {
		t.Fatalf("FindProjectByID failed: %v", err)
	}

	if len(loaded.Tasks) != 0 {
		t.Errorf("embedded tasks = %+v, want empty", loaded.Tasks)
	}
}

func TestProjectsEmbedTheirTasks(t *testing.T) {
	s, _ := newStore(t)

	first := insertProject(t, s, "First")
	second := insertProject(t, s, "Second")

	insertTask(t, s, first.ID, "a")
	insertTask(t, s, second.ID, "b")
	insertTask(t, s, first.ID, "c")

	projects, err := s.ListProjects()

	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}

	if len(projects) != 2 {
		t.Fatalf("project count = %d, want 2", len(projects))
	}

	if len(projects[0].Tasks) != 2 {
		t.Errorf("first project task count = %d, want 2", len(projects[0].Tasks))
	}

	if len(projects[1].Tasks) != 1 {
		t.Errorf("second project task count = %d, want 1", len(projects[1].Tasks))
	}
}

func TestMoveTaskBetweenProjects(t *testing.T) {
	s, _ := newStore(t)

	from := insertProject(t, s, "From")
	to := insertProject(t, s, "To")
	task := insertTask(t, s, from.ID, "movable")

	moved, err := s.UpdateTask(task.ID, models.Task{ProjectID: to.ID})

	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	if moved.ProjectID != to.ID {
		t.Errorf("ProjectID = %d, want %d", moved.ProjectID, to.ID)
	}

	if _, err := s.UpdateTask(task.ID, models.Task{ProjectID: 99}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for unknown target project", err)
	}
}
