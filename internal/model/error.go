package model

import "github.com/ferdian3456/postreaction/internal/constant"

type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches on Code so a wrapped or copied variant still compares equal
// to the package-level value below.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}

	return e.Code == t.Code && e.Message == t.Message
}

var (
	ErrPostNotFound = &ValidationError{
		Code:    constant.ERR_NOT_FOUND_ERROR,
		Message: "Post with given id is not exists",
		Param:   "postId",
	}

	ErrInvalidPostId = &ValidationError{
		Code:    constant.ERR_NOT_FOUND_ERROR,
		Message: "Bad post id",
		Param:   "postId",
	}

	ErrNotPostOwner = &ValidationError{
		Code:    constant.ERR_FORBIDDEN_ERROR,
		Message: "You have no rights to edit this post",
		Param:   "postId",
	}

	ErrEmptyPostUpdate = &ValidationError{
		Code:    constant.ERR_VALIDATION_CODE,
		Message: "You can't update post without data",
		Param:   "body",
	}

	ErrSelfReaction = &ValidationError{
		Code:    constant.ERR_SELF_REACTION_ERROR,
		Message: "You can't react on your own posts",
		Param:   "postId",
	}

	ErrAlreadyReacted = &ValidationError{
		Code:    constant.ERR_ALREADY_REACTED_ERROR,
		Message: "You have already reacted to this post",
		Param:   "postId",
	}
)
