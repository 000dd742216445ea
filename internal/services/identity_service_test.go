package services

import (
	"github.com/yukikurage/annotation-workflow-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

func (s *WorkflowTestSuite) TestEnsureUsers_CreatesInOrderAndIsIdempotent() {
	specs := []UserSpec{
		{Email: "b@x.com", Name: "B", Role: models.RoleReviewer},
		{Email: " a@x.com ", Name: "A"},
	}

	first, err := s.identity.EnsureUsers(s.ctx, s.db, specs)
	s.Require().NoError(err)
	s.Require().Len(first, 2)
	s.Equal("b@x.com", first[0].Email)
	s.Equal("a@x.com", first[1].Email)
	s.Equal(models.RoleReviewer, first[0].Role)
	s.Equal(models.RoleAnnotator, first[1].Role)

	second, err := s.identity.EnsureUsers(s.ctx, s.db, []UserSpec{specs[1], specs[0]})
	s.Require().NoError(err)
	s.Require().Len(second, 2)
	s.Equal(first[1].ID, second[0].ID)
	s.Equal(first[0].ID, second[1].ID)

	s.Equal(int64(2), s.count(&models.User{}))
}

func (s *WorkflowTestSuite) TestEnsureUsers_DuplicateEmailInOneCall() {
	users, err := s.identity.EnsureUsers(s.ctx, s.db, []UserSpec{
		{Email: "dup@x.com", Name: "First"},
		{Email: "dup@x.com", Name: "Second"},
	})
	s.Require().NoError(err)
	s.Require().Len(users, 2)
	s.Equal(users[0].ID, users[1].ID)
	s.Equal("First", users[1].Name)
	s.Equal(int64(1), s.count(&models.User{}))
}

func (s *WorkflowTestSuite) TestEnsureUsers_Validation() {
	negative := -1

	cases := []UserSpec{
		{Email: "", Name: "No email"},
		{Email: "x@x.com", Name: "  "},
		{Email: "x@x.com", Name: "X", Role: "superuser"},
		{Email: "x@x.com", Name: "X", ExperienceYears: &negative},
		{Email: "x@x.com", Name: "X", Password: "short"},
	}

	for _, spec := range cases {
		_, err := s.identity.EnsureUsers(s.ctx, s.db, []UserSpec{spec})
		s.ErrorIs(err, ErrValidation)
	}
	s.Equal(int64(0), s.count(&models.User{}))
}

func (s *WorkflowTestSuite) TestCreateUser_DuplicateEmailIsConflict() {
	specialty := "medicine"
	years := 4

	user, err := s.identity.CreateUser(s.ctx, s.db, UserSpec{
		Email:           "doc@x.com",
		Name:            "Doc",
		Specialty:       &specialty,
		ExperienceYears: &years,
		Password:        "correct horse",
	})
	s.Require().NoError(err)
	s.NotZero(user.ID)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")))

	_, err = s.identity.CreateUser(s.ctx, s.db, UserSpec{Email: "doc@x.com", Name: "Other"})
	s.ErrorIs(err, ErrConflict)
}

func (s *WorkflowTestSuite) TestGetUser() {
	created := s.createUser("a@x.com")

	user, err := s.identity.GetUser(s.ctx, s.db, created.ID)
	s.Require().NoError(err)
	s.Equal("a@x.com", user.Email)

	_, err = s.identity.GetUser(s.ctx, s.db, 999)
	s.ErrorIs(err, ErrNotFound)
}
