package services

import (
	"time"

	"github.com/yukikurage/annotation-workflow-api/internal/models"
	"github.com/yukikurage/annotation-workflow-api/internal/repository"
)

func (s *WorkflowTestSuite) TestAssign_CreatesPending() {
	user := s.createUser("a@x.com")
	task := s.createTask(s.createPrompt().ID)
	due := time.Now().Add(48 * time.Hour).UTC()

	assignment, err := s.assignments.Assign(s.ctx, s.db, task.ID, user.ID, &due)
	s.Require().NoError(err)
	s.NotZero(assignment.ID)
	s.Equal(models.AssignmentStatusPending, assignment.Status)
	s.Require().NotNil(assignment.DueAt)
	s.WithinDuration(due, *assignment.DueAt, time.Second)
}

func (s *WorkflowTestSuite) TestAssign_ExistingPairUpdatesInPlace() {
	user := s.createUser("a@x.com")
	task := s.createTask(s.createPrompt().ID, user.ID)
	first := task.Assignments[0]

	due := time.Date(2031, 6, 1, 9, 0, 0, 0, time.UTC)
	updated, err := s.assignments.Assign(s.ctx, s.db, task.ID, user.ID, &due)
	s.Require().NoError(err)
	s.Equal(first.ID, updated.ID)
	s.Equal(int64(1), s.count(&models.TaskAssignment{}))

	stored := s.reloadAssignment(first.ID)
	s.Require().NotNil(stored.DueAt)
	s.WithinDuration(due, *stored.DueAt, time.Second)

	// a nil due date clears the stored one
	_, err = s.assignments.Assign(s.ctx, s.db, task.ID, user.ID, nil)
	s.Require().NoError(err)
	s.Nil(s.reloadAssignment(first.ID).DueAt)
	s.Equal(int64(1), s.count(&models.TaskAssignment{}))
}

func (s *WorkflowTestSuite) TestAssign_ReopensCompleted() {
	user := s.createUser("a@x.com")
	task := s.createTask(s.createPrompt().ID, user.ID)
	assignmentID := task.Assignments[0].ID

	_, err := s.submissions.Submit(s.ctx, s.db, SubmitInput{
		AssignmentID: assignmentID,
		UserID:       user.ID,
		Payload:      payload(),
	})
	s.Require().NoError(err)
	s.Equal(models.AssignmentStatusCompleted, s.reloadAssignment(assignmentID).Status)

	reopened, err := s.assignments.Assign(s.ctx, s.db, task.ID, user.ID, nil)
	s.Require().NoError(err)
	s.Equal(models.AssignmentStatusPending, reopened.Status)
	s.Equal(models.AssignmentStatusPending, s.reloadAssignment(assignmentID).Status)
}

func (s *WorkflowTestSuite) TestAssign_UnknownTaskOrUser() {
	user := s.createUser("a@x.com")
	task := s.createTask(s.createPrompt().ID)

	_, err := s.assignments.Assign(s.ctx, s.db, 404, user.ID, nil)
	s.ErrorIs(err, ErrNotFound)

	_, err = s.assignments.Assign(s.ctx, s.db, task.ID, 404, nil)
	s.ErrorIs(err, ErrNotFound)

	_, err = s.assignments.Assign(s.ctx, s.db, 0, user.ID, nil)
	s.ErrorIs(err, ErrValidation)

	s.Equal(int64(0), s.count(&models.TaskAssignment{}))
}

func (s *WorkflowTestSuite) TestAssign_RacingInsertIsConflict() {
	user := s.createUser("a@x.com")
	task := s.createTask(s.createPrompt().ID, user.ID)

	// the row a concurrent assign would already have committed
	err := repository.NewAssignmentRepository(s.db).Create(&models.TaskAssignment{
		TaskID: task.ID,
		UserID: user.ID,
		Status: models.AssignmentStatusPending,
	})
	s.Require().Error(err)
	s.ErrorIs(translateStoreError(err, "create assignment"), ErrConflict)
	s.Equal(int64(1), s.count(&models.TaskAssignment{}))
}

func (s *WorkflowTestSuite) TestListAssignmentsForUser() {
	user := s.createUser("a@x.com")
	other := s.createUser("b@x.com")
	prompt := s.createPrompt(
		ModelOutputInput{ModelVersion: "model-a", Response: "A"},
		ModelOutputInput{ModelVersion: "model-b", Response: "B"},
	)
	first := s.createTask(prompt.ID, user.ID)
	second := s.createTask(prompt.ID, user.ID, other.ID)

	details, err := s.assignments.ListAssignmentsForUser(s.ctx, s.db, user.ID)
	s.Require().NoError(err)
	s.Require().Len(details, 2)

	s.Equal(first.ID, details[0].TaskID)
	s.Equal(first.ID, details[0].Task.ID)
	s.Equal(second.ID, details[1].Task.ID)
	s.Equal(prompt.ID, details[0].Prompt.ID)
	s.Equal("Summarize", details[0].Prompt.Title)
	s.Require().Len(details[0].ModelOutputs, 2)
	s.Equal("model-a", details[0].ModelOutputs[0].ModelVersion)
	s.Equal("model-b", details[0].ModelOutputs[1].ModelVersion)
	s.Equal(models.AssignmentStatusPending, details[1].Status)

	s.True(AssignmentBelongsToUser(details, details[1].ID))
	s.False(AssignmentBelongsToUser(details, second.Assignments[1].ID))
}

func (s *WorkflowTestSuite) TestListAssignmentsForUser_UnknownUser() {
	details, err := s.assignments.ListAssignmentsForUser(s.ctx, s.db, 12345)
	s.Require().NoError(err)
	s.Empty(details)
	s.False(AssignmentBelongsToUser(details, 1))
}
