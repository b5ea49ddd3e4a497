package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/taskhub/taskhub-api/internal/database"
	"github.com/taskhub/taskhub-api/internal/models"
	"github.com/taskhub/taskhub-api/internal/repository"
)

// TaskServiceTestSuite defines the test suite for TaskService
type TaskServiceTestSuite struct {
	suite.Suite
	db          *gorm.DB
	taskService *TaskService
	userService *UserService
}

// SetupTest runs before each test
func (suite *TaskServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	suite.Require().NoError(err)

	suite.Require().NoError(database.Migrate(suite.db))

	taskRepo := repository.NewTaskRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	suite.taskService = NewTaskService(taskRepo, userRepo)
	suite.userService = NewUserService(userRepo)
}

// TearDownTest runs after each test
func (suite *TaskServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data

func (suite *TaskServiceTestSuite) createTestUser(name, email string) *models.User {
	user := &models.User{Name: name, Email: email}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *TaskServiceTestSuite) createTestTask(title, description string, status models.TaskStatus, createdAt time.Time) *models.Task {
	task := &models.Task{
		Title:       title,
		Description: &description,
		Status:      status,
		CreatedAt:   createdAt,
	}
	suite.Require().NoError(suite.db.Create(task).Error)
	return task
}

func strPtr(s string) *string { return &s }

func statusPtr(s models.TaskStatus) *models.TaskStatus { return &s }

// Create

func (suite *TaskServiceTestSuite) TestCreate_DefaultsStatusToTodo() {
	task, err := suite.taskService.Create(CreateTaskInput{Title: "Write release notes"})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusTodo, task.Status)
	assert.NotEmpty(suite.T(), task.ID)
	assert.False(suite.T(), task.CreatedAt.IsZero())
	assert.False(suite.T(), task.UpdatedAt.IsZero())
	assert.Nil(suite.T(), task.DueDate)
}

func (suite *TaskServiceTestSuite) TestCreate_PreservesExplicitStatus() {
	task, err := suite.taskService.Create(CreateTaskInput{
		Title:  "Ship hotfix",
		Status: models.TaskStatusInProgress,
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusInProgress, task.Status)
}

func (suite *TaskServiceTestSuite) TestCreate_ParsesDueDate() {
	task, err := suite.taskService.Create(CreateTaskInput{
		Title:   "Prepare demo",
		DueDate: strPtr("2025-03-01T10:00:00Z"),
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(task.DueDate)
	expected := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	assert.True(suite.T(), task.DueDate.Equal(expected))
}

func (suite *TaskServiceTestSuite) TestCreate_AcceptsDateOnlyDueDate() {
	task, err := suite.taskService.Create(CreateTaskInput{
		Title:   "Quarterly review",
		DueDate: strPtr("2025-06-30"),
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(task.DueDate)
	expected := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	assert.True(suite.T(), task.DueDate.Equal(expected))
}

func (suite *TaskServiceTestSuite) TestCreate_RejectsMalformedDueDate() {
	_, err := suite.taskService.Create(CreateTaskInput{
		Title:   "Bad date",
		DueDate: strPtr("next tuesday"),
	})

	assert.ErrorIs(suite.T(), err, ErrInvalidDueDate)
}

// Get

func (suite *TaskServiceTestSuite) TestGet_NotFound() {
	_, err := suite.taskService.Get("3f3f8c2a-0b53-4b8a-9a3b-3a1f5a1f4b11")

	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestGet_LoadsAssignees() {
	user := suite.createTestUser("Ava Carter", "ava@example.com")
	task := suite.createTestTask("Review PR", "Backend changes", models.TaskStatusTodo, time.Now())
	_, err := suite.taskService.AssignUsers(task.ID, []string{user.ID})
	suite.Require().NoError(err)

	got, err := suite.taskService.Get(task.ID)

	suite.Require().NoError(err)
	suite.Require().Len(got.Assignees, 1)
	assert.Equal(suite.T(), user.ID, got.Assignees[0].ID)
}

// List

func (suite *TaskServiceTestSuite) TestList_FilterByStatus() {
	suite.createTestTask("Todo task", "", models.TaskStatusTodo, time.Now())
	suite.createTestTask("Done task", "", models.TaskStatusDone, time.Now())

	tasks, total, err := suite.taskService.List(ListTasksInput{Status: statusPtr(models.TaskStatusDone)})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1), total)
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), "Done task", tasks[0].Title)
}

func (suite *TaskServiceTestSuite) TestList_FilterByAssignee() {
	user := suite.createTestUser("Liam Patel", "liam@example.com")
	other := suite.createTestUser("Noah Kim", "noah@example.com")
	assigned := suite.createTestTask("Assigned task", "", models.TaskStatusTodo, time.Now())
	otherTask := suite.createTestTask("Other task", "", models.TaskStatusTodo, time.Now())

	_, err := suite.taskService.AssignUsers(assigned.ID, []string{user.ID})
	suite.Require().NoError(err)
	_, err = suite.taskService.AssignUsers(otherTask.ID, []string{other.ID})
	suite.Require().NoError(err)

	tasks, total, err := suite.taskService.List(ListTasksInput{AssigneeID: &user.ID})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1), total)
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), assigned.ID, tasks[0].ID)
	// the full assignee set is loaded even when filtering by one assignee
	suite.Require().Len(tasks[0].Assignees, 1)
	assert.Equal(suite.T(), user.ID, tasks[0].Assignees[0].ID)
}

func (suite *TaskServiceTestSuite) TestList_AssigneeWithoutTasks() {
	user := suite.createTestUser("Sofia Nguyen", "sofia@example.com")
	suite.createTestTask("Unassigned", "", models.TaskStatusTodo, time.Now())

	tasks, total, err := suite.taskService.List(ListTasksInput{AssigneeID: &user.ID})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(0), total)
	assert.Empty(suite.T(), tasks)
}

func (suite *TaskServiceTestSuite) TestList_SearchMatchesTitleOrDescription() {
	suite.createTestTask("Optimize Database Indexes", "Verify query plans", models.TaskStatusTodo, time.Now())
	suite.createTestTask("Write docs", "Mention the INDEX hints", models.TaskStatusTodo, time.Now())
	suite.createTestTask("Unrelated", "Nothing to see", models.TaskStatusTodo, time.Now())

	tasks, total, err := suite.taskService.List(ListTasksInput{Search: "index"})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(2), total)
	assert.Len(suite.T(), tasks, 2)
}

func (suite *TaskServiceTestSuite) TestList_SearchTreatsWildcardsLiterally() {
	suite.createTestTask("Reach 100% coverage", "", models.TaskStatusTodo, time.Now())
	suite.createTestTask("Reach 100x throughput", "", models.TaskStatusTodo, time.Now())

	tasks, total, err := suite.taskService.List(ListTasksInput{Search: "100%"})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1), total)
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), "Reach 100% coverage", tasks[0].Title)
}

func (suite *TaskServiceTestSuite) TestList_CombinedFilters() {
	user := suite.createTestUser("Ava Carter", "ava@example.com")
	match := suite.createTestTask("Optimize indexes", "", models.TaskStatusDone, time.Now())
	wrongStatus := suite.createTestTask("Optimize indexes again", "", models.TaskStatusTodo, time.Now())
	suite.createTestTask("Done but unrelated", "", models.TaskStatusDone, time.Now())

	_, err := suite.taskService.AssignUsers(match.ID, []string{user.ID})
	suite.Require().NoError(err)
	_, err = suite.taskService.AssignUsers(wrongStatus.ID, []string{user.ID})
	suite.Require().NoError(err)

	tasks, total, err := suite.taskService.List(ListTasksInput{
		Status:     statusPtr(models.TaskStatusDone),
		AssigneeID: &user.ID,
		Search:     "index",
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1), total)
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), match.ID, tasks[0].ID)
}

func (suite *TaskServiceTestSuite) TestList_Pagination() {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		suite.createTestTask("Task", "", models.TaskStatusTodo, base.Add(time.Duration(i)*time.Hour))
	}

	tasks, total, err := suite.taskService.List(ListTasksInput{Limit: 3, Offset: 6})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(10), total)
	suite.Require().Len(tasks, 3)
	// newest first: offset 6 of the descending order lands on hours 3, 2, 1
	assert.True(suite.T(), tasks[0].CreatedAt.Equal(base.Add(3*time.Hour)))
	assert.True(suite.T(), tasks[2].CreatedAt.Equal(base.Add(1*time.Hour)))

	lastPage, total, err := suite.taskService.List(ListTasksInput{Limit: 3, Offset: 9})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(10), total)
	assert.Len(suite.T(), lastPage, 1)
}

func (suite *TaskServiceTestSuite) TestList_OrdersByCreationTimeDescending() {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.createTestTask("Oldest", "", models.TaskStatusTodo, base)
	suite.createTestTask("Newest", "", models.TaskStatusTodo, base.Add(2*time.Hour))
	suite.createTestTask("Middle", "", models.TaskStatusTodo, base.Add(time.Hour))

	tasks, _, err := suite.taskService.List(ListTasksInput{})

	suite.Require().NoError(err)
	suite.Require().Len(tasks, 3)
	assert.Equal(suite.T(), "Newest", tasks[0].Title)
	assert.Equal(suite.T(), "Middle", tasks[1].Title)
	assert.Equal(suite.T(), "Oldest", tasks[2].Title)
}

// Update

func (suite *TaskServiceTestSuite) TestUpdate_AppliesOnlyProvidedFields() {
	task := suite.createTestTask("Original title", "Original description", models.TaskStatusTodo, time.Now())

	updated, err := suite.taskService.Update(task.ID, UpdateTaskInput{Title: strPtr("New title")})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "New title", updated.Title)
	suite.Require().NotNil(updated.Description)
	assert.Equal(suite.T(), "Original description", *updated.Description)
	assert.Equal(suite.T(), models.TaskStatusTodo, updated.Status)
}

func (suite *TaskServiceTestSuite) TestUpdate_RefreshesUpdatedAt() {
	task := suite.createTestTask("Stale", "", models.TaskStatusTodo, time.Now())
	before := task.UpdatedAt

	time.Sleep(10 * time.Millisecond)
	updated, err := suite.taskService.Update(task.ID, UpdateTaskInput{Status: statusPtr(models.TaskStatusDone)})

	suite.Require().NoError(err)
	assert.True(suite.T(), updated.UpdatedAt.After(before))
}

func (suite *TaskServiceTestSuite) TestUpdate_DueDateSemantics() {
	task := suite.createTestTask("Dated", "", models.TaskStatusTodo, time.Now())

	// explicit date string sets it
	updated, err := suite.taskService.Update(task.ID, UpdateTaskInput{DueDate: strPtr("2025-05-01T00:00:00Z")})
	suite.Require().NoError(err)
	suite.Require().NotNil(updated.DueDate)

	// absent field leaves it untouched
	updated, err = suite.taskService.Update(task.ID, UpdateTaskInput{Title: strPtr("Still dated")})
	suite.Require().NoError(err)
	suite.Require().NotNil(updated.DueDate)

	// explicit clear removes it
	updated, err = suite.taskService.Update(task.ID, UpdateTaskInput{ClearDueDate: true})
	suite.Require().NoError(err)
	assert.Nil(suite.T(), updated.DueDate)
}

func (suite *TaskServiceTestSuite) TestUpdate_NotFound() {
	_, err := suite.taskService.Update("9a1f2b3c-4d5e-4f60-8172-93a4b5c6d7e8", UpdateTaskInput{Title: strPtr("x")})

	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

// Delete

func (suite *TaskServiceTestSuite) TestDelete_RemovesTask() {
	task := suite.createTestTask("Disposable", "", models.TaskStatusTodo, time.Now())

	suite.Require().NoError(suite.taskService.Delete(task.ID))

	_, err := suite.taskService.Get(task.ID)
	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestDelete_SecondDeleteFails() {
	task := suite.createTestTask("Once only", "", models.TaskStatusTodo, time.Now())

	suite.Require().NoError(suite.taskService.Delete(task.ID))

	err := suite.taskService.Delete(task.ID)
	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

// AssignUsers

func (suite *TaskServiceTestSuite) TestAssignUsers_SetsAssignees() {
	u1 := suite.createTestUser("Ava Carter", "ava@example.com")
	u2 := suite.createTestUser("Liam Patel", "liam@example.com")
	task := suite.createTestTask("Shared work", "", models.TaskStatusTodo, time.Now())

	updated, err := suite.taskService.AssignUsers(task.ID, []string{u1.ID, u2.ID})

	suite.Require().NoError(err)
	suite.Require().Len(updated.Assignees, 2)
}

func (suite *TaskServiceTestSuite) TestAssignUsers_ReplacesEntireSet() {
	u1 := suite.createTestUser("Ava Carter", "ava@example.com")
	u2 := suite.createTestUser("Liam Patel", "liam@example.com")
	u3 := suite.createTestUser("Sofia Nguyen", "sofia@example.com")
	task := suite.createTestTask("Handover", "", models.TaskStatusTodo, time.Now())

	_, err := suite.taskService.AssignUsers(task.ID, []string{u1.ID, u2.ID})
	suite.Require().NoError(err)

	updated, err := suite.taskService.AssignUsers(task.ID, []string{u3.ID})

	suite.Require().NoError(err)
	suite.Require().Len(updated.Assignees, 1)
	assert.Equal(suite.T(), u3.ID, updated.Assignees[0].ID)
}

func (suite *TaskServiceTestSuite) TestAssignUsers_DeduplicatesIDs() {
	user := suite.createTestUser("Ava Carter", "ava@example.com")
	task := suite.createTestTask("Solo work", "", models.TaskStatusTodo, time.Now())

	updated, err := suite.taskService.AssignUsers(task.ID, []string{user.ID, user.ID})

	suite.Require().NoError(err)
	suite.Require().Len(updated.Assignees, 1)
	assert.Equal(suite.T(), user.ID, updated.Assignees[0].ID)
}

func (suite *TaskServiceTestSuite) TestAssignUsers_UnknownUserAbortsWholeOperation() {
	user := suite.createTestUser("Ava Carter", "ava@example.com")
	task := suite.createTestTask("Guarded", "", models.TaskStatusTodo, time.Now())

	_, err := suite.taskService.AssignUsers(task.ID, []string{user.ID})
	suite.Require().NoError(err)

	_, err = suite.taskService.AssignUsers(task.ID, []string{user.ID, "0c9d8e7f-6a5b-4c3d-9e1f-2a3b4c5d6e7f"})
	assert.ErrorIs(suite.T(), err, ErrUsersNotFound)

	// the prior assignee set is untouched
	got, err := suite.taskService.Get(task.ID)
	suite.Require().NoError(err)
	suite.Require().Len(got.Assignees, 1)
	assert.Equal(suite.T(), user.ID, got.Assignees[0].ID)
}

func (suite *TaskServiceTestSuite) TestAssignUsers_TaskNotFound() {
	user := suite.createTestUser("Ava Carter", "ava@example.com")

	_, err := suite.taskService.AssignUsers("5b6c7d8e-9f0a-4b1c-8d2e-3f4a5b6c7d8e", []string{user.ID})

	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

// Cascade

func (suite *TaskServiceTestSuite) TestDeleteUser_CascadesAssignmentsButKeepsTask() {
	user := suite.createTestUser("Ava Carter", "ava@example.com")
	task := suite.createTestTask("Survivor", "", models.TaskStatusTodo, time.Now())

	assigned, err := suite.taskService.AssignUsers(task.ID, []string{user.ID})
	suite.Require().NoError(err)
	suite.Require().Len(assigned.Assignees, 1)

	suite.Require().NoError(suite.userService.Delete(user.ID))

	got, err := suite.taskService.Get(task.ID)
	suite.Require().NoError(err)
	assert.Empty(suite.T(), got.Assignees)
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
