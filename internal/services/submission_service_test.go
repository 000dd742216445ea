package services

import (
	"encoding/json"

	"github.com/yukikurage/annotation-workflow-api/internal/constants"
	"github.com/yukikurage/annotation-workflow-api/internal/jsonvalue"
	"github.com/yukikurage/annotation-workflow-api/internal/models"
)

func (s *WorkflowTestSuite) pendingAssignment() (models.User, models.TaskAssignment) {
	user := s.createUser("reviewer@x.com")
	task := s.createTask(s.createPrompt().ID, user.ID)
	return user, task.Assignments[0]
}

func (s *WorkflowTestSuite) TestSubmit_CompletesAssignment() {
	user, assignment := s.pendingAssignment()
	comment := "clear and correct"

	annotation, err := s.submissions.Submit(s.ctx, s.db, SubmitInput{
		AssignmentID: assignment.ID,
		UserID:       user.ID,
		Payload:      payload("accuracy", jsonvalue.Int(4)),
		Comment:      &comment,
	})
	s.Require().NoError(err)
	s.NotZero(annotation.ID)
	s.Equal(assignment.TaskID, annotation.TaskID)
	s.Equal(assignment.ID, annotation.AssignmentID)

	s.Equal(models.AssignmentStatusCompleted, s.reloadAssignment(assignment.ID).Status)
	s.Equal(int64(1), s.count(&models.Annotation{}))
	s.Equal(int64(0), s.count(&models.SafetyIncident{}))

	var stored models.Annotation
	s.Require().NoError(s.db.First(&stored, annotation.ID).Error)
	out, err := json.Marshal(stored.Payload)
	s.Require().NoError(err)
	s.Equal(`{"accuracy":4}`, string(out))
	s.Equal("clear and correct", *stored.Comment)
}

func (s *WorkflowTestSuite) TestSubmit_WritesOneAuditEntry() {
	user, assignment := s.pendingAssignment()

	_, err := s.submissions.Submit(s.ctx, s.db, SubmitInput{
		AssignmentID: assignment.ID,
		UserID:       user.ID,
		Payload:      payload("preferred", jsonvalue.String("a")),
	})
	s.Require().NoError(err)

	var entries []models.AuditLog
	s.Require().NoError(s.db.Find(&entries).Error)
	s.Require().Len(entries, 1)
	s.Equal(constants.ActionSubmitAnnotation, entries[0].Action)
	s.Require().NotNil(entries[0].ActorID)
	s.Equal(user.ID, *entries[0].ActorID)

	out, err := json.Marshal(entries[0].Payload)
	s.Require().NoError(err)
	s.JSONEq(`{"assignment_id":`+jsonID(assignment.ID)+`,"task_id":`+jsonID(assignment.TaskID)+`}`, string(out))
}

func (s *WorkflowTestSuite) TestSubmit_TwiceCreatesSecondAnnotation() {
	user, assignment := s.pendingAssignment()

	for i := 0; i < 2; i++ {
		_, err := s.submissions.Submit(s.ctx, s.db, SubmitInput{
			AssignmentID: assignment.ID,
			UserID:       user.ID,
			Payload:      payload("round", jsonvalue.Int(int64(i))),
		})
		s.Require().NoError(err)
	}

	s.Equal(int64(2), s.count(&models.Annotation{}))
	s.Equal(int64(1), s.count(&models.TaskAssignment{}))
	s.Equal(int64(2), s.count(&models.AuditLog{}))
	s.Equal(models.AssignmentStatusCompleted, s.reloadAssignment(assignment.ID).Status)
}

func (s *WorkflowTestSuite) TestSubmit_SafetyIncident() {
	user, assignment := s.pendingAssignment()

	var incident jsonvalue.Object
	s.Require().NoError(json.Unmarshal([]byte(`{"severity":"high","tags":["self-harm"]}`), &incident))

	annotation, err := s.submissions.Submit(s.ctx, s.db, SubmitInput{
		AssignmentID:   assignment.ID,
		UserID:         user.ID,
		Payload:        payload("accuracy", jsonvalue.Int(1)),
		SafetyIncident: incident,
	})
	s.Require().NoError(err)

	var incidents []models.SafetyIncident
	s.Require().NoError(s.db.Find(&incidents).Error)
	s.Require().Len(incidents, 1)
	s.Equal(annotation.ID, incidents[0].AnnotationID)
	s.Equal("high", incidents[0].Severity)

	tags, err := json.Marshal(incidents[0].Tags)
	s.Require().NoError(err)
	s.Equal(`["self-harm"]`, string(tags))
}

func (s *WorkflowTestSuite) TestSubmit_EmptyIncidentDefaultsToInfo() {
	user, assignment := s.pendingAssignment()

	_, err := s.submissions.Submit(s.ctx, s.db, SubmitInput{
		AssignmentID:   assignment.ID,
		UserID:         user.ID,
		Payload:        payload(),
		SafetyIncident: jsonvalue.Object{},
	})
	s.Require().NoError(err)

	var incident models.SafetyIncident
	s.Require().NoError(s.db.First(&incident).Error)
	s.Equal(constants.DefaultSeverity, incident.Severity)
	s.True(incident.Tags.IsNull())
}

func (s *WorkflowTestSuite) TestSubmit_UnknownAssignment() {
	user := s.createUser("a@x.com")

	_, err := s.submissions.Submit(s.ctx, s.db, SubmitInput{
		AssignmentID: 99,
		UserID:       user.ID,
		Payload:      payload(),
	})
	s.ErrorIs(err, ErrNotFound)
	s.Equal(int64(0), s.count(&models.Annotation{}))
	s.Equal(int64(0), s.count(&models.AuditLog{}))
}

func (s *WorkflowTestSuite) TestSubmit_Validation() {
	user, assignment := s.pendingAssignment()

	cases := []SubmitInput{
		{AssignmentID: 0, UserID: user.ID, Payload: payload()},
		{AssignmentID: assignment.ID, UserID: 0, Payload: payload()},
		{AssignmentID: assignment.ID, UserID: user.ID, Payload: nil},
	}

	for _, input := range cases {
		_, err := s.submissions.Submit(s.ctx, s.db, input)
		s.ErrorIs(err, ErrValidation)
	}
	s.Equal(models.AssignmentStatusPending, s.reloadAssignment(assignment.ID).Status)
}

func (s *WorkflowTestSuite) TestSubmit_AuditFailureRollsBackEverything() {
	user, assignment := s.pendingAssignment()
	s.failCreatesOn("audit_logs")

	_, err := s.submissions.Submit(s.ctx, s.db, SubmitInput{
		AssignmentID:   assignment.ID,
		UserID:         user.ID,
		Payload:        payload("accuracy", jsonvalue.Int(3)),
		SafetyIncident: payload("severity", jsonvalue.String("low")),
	})
	s.Require().Error(err)

	s.Equal(int64(0), s.count(&models.Annotation{}))
	s.Equal(int64(0), s.count(&models.SafetyIncident{}))
	s.Equal(int64(0), s.count(&models.AuditLog{}))
	s.Equal(models.AssignmentStatusPending, s.reloadAssignment(assignment.ID).Status)
}

func jsonID(id uint64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func (s *WorkflowTestSuite) TestSubmit_BareNumberFieldsReloadExactly() {
	user, assignment := s.pendingAssignment()

	var flagged, scores jsonvalue.Object
	s.Require().NoError(json.Unmarshal([]byte(`{"severity":"high","tags":1.50}`), &flagged))
	s.Require().NoError(json.Unmarshal([]byte(`{"zeta":0.70,"alpha":5}`), &scores))

	annotation, err := s.submissions.Submit(s.ctx, s.db, SubmitInput{
		AssignmentID:   assignment.ID,
		UserID:         user.ID,
		Payload:        scores,
		SafetyIncident: flagged,
	})
	s.Require().NoError(err)

	var incident models.SafetyIncident
	s.Require().NoError(s.db.First(&incident).Error)
	s.Equal(jsonvalue.KindNumber, incident.Tags.Kind())
	s.Equal("1.50", incident.Tags.Text())

	var stored models.Annotation
	s.Require().NoError(s.db.First(&stored, annotation.ID).Error)
	out, err := json.Marshal(stored.Payload)
	s.Require().NoError(err)
	s.Equal(`{"zeta":0.70,"alpha":5}`, string(out))
}

func (s *WorkflowTestSuite) TestListAnnotations_OldestFirst() {
	user, assignment := s.pendingAssignment()

	none, err := s.submissions.ListAnnotations(s.ctx, s.db, assignment.ID)
	s.Require().NoError(err)
	s.Empty(none)

	for i := 0; i < 2; i++ {
		_, err := s.submissions.Submit(s.ctx, s.db, SubmitInput{
			AssignmentID: assignment.ID,
			UserID:       user.ID,
			Payload:      payload("round", jsonvalue.Int(int64(i))),
		})
		s.Require().NoError(err)
	}

	annotations, err := s.submissions.ListAnnotations(s.ctx, s.db, assignment.ID)
	s.Require().NoError(err)
	s.Require().Len(annotations, 2)
	s.Equal("0", annotations[0].Payload[0].Value.Text())
	s.Equal("1", annotations[1].Payload[0].Value.Text())
}
