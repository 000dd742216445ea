package services

import (
	"encoding/json"
	"time"

	"github.com/yukikurage/annotation-workflow-api/internal/jsonvalue"
	"github.com/yukikurage/annotation-workflow-api/internal/models"
)

func (s *WorkflowTestSuite) TestCreateTask_WithAssignees() {
	u1 := s.createUser("a@x.com")
	u2 := s.createUser("b@x.com")
	prompt := s.createPrompt()
	due := time.Date(2030, 1, 2, 15, 4, 5, 0, time.UTC)

	var rubric jsonvalue.Object
	s.Require().NoError(json.Unmarshal([]byte(`{"helpfulness":0.6,"harmlessness":0.4}`), &rubric))

	task, err := s.tasks.CreateTask(s.ctx, s.db, CreateTaskInput{
		PromptID:       prompt.ID,
		AnnotationType: models.AnnotationTypeRubric,
		RubricConfig:   rubric,
		AssigneeIDs:    []uint64{u2.ID, u1.ID, u2.ID},
		DueAt:          &due,
	})
	s.Require().NoError(err)
	s.Equal("open", task.Status)
	s.Require().Len(task.Assignments, 2)

	loaded, err := s.tasks.GetTask(s.ctx, s.db, task.ID)
	s.Require().NoError(err)
	s.Require().Len(loaded.Assignments, 2)
	s.Equal(u2.ID, loaded.Assignments[0].UserID)
	s.Equal(u1.ID, loaded.Assignments[1].UserID)
	for _, a := range loaded.Assignments {
		s.Equal(models.AssignmentStatusPending, a.Status)
		s.Require().NotNil(a.DueAt)
		s.WithinDuration(due, *a.DueAt, time.Second)
	}
	s.Equal([]string{"helpfulness", "harmlessness"}, loaded.RubricConfig.Keys())
}

func (s *WorkflowTestSuite) TestCreateTask_WithoutAssignees() {
	prompt := s.createPrompt()

	task := s.createTask(prompt.ID)
	s.Empty(task.Assignments)
	s.Equal(int64(0), s.count(&models.TaskAssignment{}))
}

func (s *WorkflowTestSuite) TestCreateTask_MissingPromptIsReferenceError() {
	_, err := s.tasks.CreateTask(s.ctx, s.db, CreateTaskInput{
		PromptID:       999,
		AnnotationType: models.AnnotationTypeComparison,
	})
	s.ErrorIs(err, ErrReference)
	s.Equal(int64(0), s.count(&models.AnnotationTask{}))
}

func (s *WorkflowTestSuite) TestCreateTask_MissingAssigneeRollsBack() {
	user := s.createUser("a@x.com")
	prompt := s.createPrompt()

	_, err := s.tasks.CreateTask(s.ctx, s.db, CreateTaskInput{
		PromptID:       prompt.ID,
		AnnotationType: models.AnnotationTypeDemonstration,
		AssigneeIDs:    []uint64{user.ID, 777},
	})
	s.ErrorIs(err, ErrReference)
	s.Equal(int64(0), s.count(&models.AnnotationTask{}))
	s.Equal(int64(0), s.count(&models.TaskAssignment{}))
}

func (s *WorkflowTestSuite) TestCreateTask_AssignmentFailureRollsBackTask() {
	user := s.createUser("a@x.com")
	prompt := s.createPrompt()
	s.failCreatesOn("task_assignments")

	_, err := s.tasks.CreateTask(s.ctx, s.db, CreateTaskInput{
		PromptID:       prompt.ID,
		AnnotationType: models.AnnotationTypeRubric,
		AssigneeIDs:    []uint64{user.ID},
	})
	s.Require().Error(err)
	s.Equal(int64(0), s.count(&models.AnnotationTask{}))
}

func (s *WorkflowTestSuite) TestCreateTask_Validation() {
	prompt := s.createPrompt()
	var textRubric jsonvalue.Object
	s.Require().NoError(json.Unmarshal([]byte(`{"accuracy":"high"}`), &textRubric))

	cases := []CreateTaskInput{
		{PromptID: 0, AnnotationType: models.AnnotationTypeRubric},
		{PromptID: prompt.ID, AnnotationType: "ranking"},
		{PromptID: prompt.ID, AnnotationType: models.AnnotationTypeRubric, RubricConfig: textRubric},
		{PromptID: prompt.ID, AnnotationType: models.AnnotationTypeRubric, AssigneeIDs: []uint64{0}},
	}

	for _, input := range cases {
		_, err := s.tasks.CreateTask(s.ctx, s.db, input)
		s.ErrorIs(err, ErrValidation)
	}
}

func (s *WorkflowTestSuite) TestGetTask_NotFound() {
	_, err := s.tasks.GetTask(s.ctx, s.db, 5)
	s.ErrorIs(err, ErrNotFound)
}

func (s *WorkflowTestSuite) TestAnnotationTypes() {
	types := s.tasks.AnnotationTypes()
	s.Equal([]models.AnnotationType{"comparison", "rubric", "demonstration"}, types)

	// callers cannot mutate the package list
	types[0] = "changed"
	s.Equal(models.AnnotationTypeComparison, s.tasks.AnnotationTypes()[0])
}
