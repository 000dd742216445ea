package services

import (
	"github.com/yukikurage/annotation-workflow-api/internal/jsonvalue"
)

func metricByName(metrics []Metric, name string) (Metric, bool) {
	for _, m := range metrics {
		if m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}

func (s *WorkflowTestSuite) TestComputeMetrics_EmptyStore() {
	metrics, err := s.metrics.ComputeMetrics(s.ctx, s.db)
	s.Require().NoError(err)
	s.Require().Len(metrics, 3)

	s.Equal(MetricAnnotationsTotal, metrics[0].Name)
	s.Equal(MetricAssignmentCompletionRate, metrics[1].Name)
	s.Equal(MetricSafetyIncidentsTotal, metrics[2].Name)

	for _, m := range metrics {
		s.Equal(0.0, m.Value)
		s.NotNil(m.Description)
	}
	s.Require().NotNil(metrics[1].Unit)
	s.Equal("%", *metrics[1].Unit)
	s.Nil(metrics[0].Unit)
}

func (s *WorkflowTestSuite) TestComputeMetrics_PartialCompletion() {
	a := s.createUser("a@x.com")
	b := s.createUser("b@x.com")
	c := s.createUser("c@x.com")
	d := s.createUser("d@x.com")
	task := s.createTask(s.createPrompt().ID, a.ID, b.ID, c.ID, d.ID)

	_, err := s.submissions.Submit(s.ctx, s.db, SubmitInput{
		AssignmentID:   task.Assignments[0].ID,
		UserID:         a.ID,
		Payload:        payload("accuracy", jsonvalue.Int(5)),
		SafetyIncident: payload("severity", jsonvalue.String("medium")),
	})
	s.Require().NoError(err)

	metrics, err := s.metrics.ComputeMetrics(s.ctx, s.db)
	s.Require().NoError(err)

	total, ok := metricByName(metrics, MetricAnnotationsTotal)
	s.Require().True(ok)
	s.Equal(1.0, total.Value)

	rate, ok := metricByName(metrics, MetricAssignmentCompletionRate)
	s.Require().True(ok)
	s.Equal(25.0, rate.Value)

	incidents, ok := metricByName(metrics, MetricSafetyIncidentsTotal)
	s.Require().True(ok)
	s.Equal(1.0, incidents.Value)
}

func (s *WorkflowTestSuite) TestEndToEndScenario() {
	users, err := s.identity.EnsureUsers(s.ctx, s.db, []UserSpec{{Email: "a@x.com", Name: "Ada"}})
	s.Require().NoError(err)
	u := users[0]

	p := s.createPrompt(ModelOutputInput{ModelVersion: "model-a", Response: "Answer"})
	t := s.createTask(p.ID, u.ID)

	details, err := s.assignments.ListAssignmentsForUser(s.ctx, s.db, u.ID)
	s.Require().NoError(err)
	s.Require().Len(details, 1)
	s.Equal(t.ID, details[0].Task.ID)
	s.Equal(p.ID, details[0].Prompt.ID)
	s.Len(details[0].ModelOutputs, 1)
	s.True(AssignmentBelongsToUser(details, details[0].ID))

	annotation, err := s.submissions.Submit(s.ctx, s.db, SubmitInput{
		AssignmentID: details[0].ID,
		UserID:       u.ID,
		Payload:      payload("accuracy", jsonvalue.Int(4)),
	})
	s.Require().NoError(err)
	s.Equal(t.ID, annotation.TaskID)

	metrics, err := s.metrics.ComputeMetrics(s.ctx, s.db)
	s.Require().NoError(err)

	total, _ := metricByName(metrics, MetricAnnotationsTotal)
	s.GreaterOrEqual(total.Value, 1.0)
	rate, _ := metricByName(metrics, MetricAssignmentCompletionRate)
	s.Equal(100.0, rate.Value)
}
