package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-skillcheck/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "session not found",
			expected: "NOT_FOUND: session not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "select at least one player and one event",
			expected: "INVALID_ARGUMENT: select at least one player and one event",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("disk full")
	wrapped := errors.Wrap(baseErr, "failed to save players")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to save players", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCodeAndMeta() {
	baseErr := errors.NotFound("session not found").WithMeta("session_id", "s1")
	wrapped := errors.Wrap(baseErr, "failed to load session")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().Equal("s1", errors.GetMeta(wrapped)["session_id"])
	s.Assert().True(errors.IsNotFound(wrapped))
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
	s.Assert().Nil(errors.Storage(nil, "should be nil"))
}

func (s *ErrorsTestSuite) TestStorage() {
	err := errors.Storagef(fmt.Errorf("quota exceeded"), "failed to write %s", "players")

	s.Assert().True(errors.IsStorage(err))
	s.Assert().False(err.Code.Fatal())
	s.Assert().Equal("failed to write players", errors.GetMessage(err))
}

func (s *ErrorsTestSuite) TestFatal() {
	s.Assert().True(errors.CodeInvalidArgument.Fatal())
	s.Assert().True(errors.CodeNotFound.Fatal())
	s.Assert().False(errors.CodeUnavailable.Fatal())
	s.Assert().False(errors.CodeOK.Fatal())
}

func (s *ErrorsTestSuite) TestErrorIs() {
	s.Assert().True(errors.Is(errors.Wrap(errors.NotFound("a"), "b"), errors.NotFound("c")))
	s.Assert().False(errors.NotFound("a").Is(errors.InvalidArgument("a")))
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(errors.NotFound("x")))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	s.Assert().Equal("standard error", errors.GetMessage(fmt.Errorf("standard error")))
	s.Assert().Equal("", errors.GetMessage(nil))
	s.Assert().Nil(errors.GetMeta(fmt.Errorf("standard error")))
}
