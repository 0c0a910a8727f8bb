package apperrors

import "net/http"

// Predefined domain errors. Services return these directly; the gin
// handler maps them onto the wire via HTTPCode.

// auth
var (
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid credentials.", http.StatusUnauthorized)
	ErrEmailAlreadyExists = New(CodeAlreadyExists, "auth", "Email already registered.", http.StatusConflict)
	ErrInvalidToken       = New(CodeInvalidToken, "auth", "Invalid or expired token.", http.StatusUnauthorized)
	ErrResetTokenInvalid  = New(CodeInvalidToken, "auth", "Invalid or expired token.", http.StatusBadRequest)
	ErrWeakPassword       = New(CodeValidationFailed, "auth", "Password must be at least 8 characters long.", http.StatusBadRequest)
	ErrUserInactive       = New(CodeForbidden, "auth", "Account is deactivated.", http.StatusForbidden)
)

// users / roles
var (
	ErrUserNotFound   = New(CodeNotFound, "users", "User not found.", http.StatusNotFound)
	ErrRoleNotFound   = New(CodeNotFound, "users", "Role not found.", http.StatusNotFound)
	ErrRoleAlreadySet = New(CodeConflict, "users", "User already has that role.", http.StatusConflict)
)

// categories
var (
	ErrCategoryNotFound   = New(CodeNotFound, "categories", "Category not found.", http.StatusNotFound)
	ErrCategoryNameTaken  = New(CodeConflict, "categories", "Category name already exists.", http.StatusConflict)
	ErrAlreadySubscribed  = New(CodeConflict, "categories", "Already subscribed to this category.", http.StatusConflict)
	ErrSubscriptionAbsent = New(CodeNotFound, "categories", "Subscription not found.", http.StatusNotFound)
)

// content
var (
	ErrContentNotFound    = New(CodeNotFound, "content", "Content not found.", http.StatusNotFound)
	ErrContentForbidden   = New(CodeForbidden, "content", "Insufficient permissions.", http.StatusForbidden)
	ErrFlagReasonRequired = New(CodeValidationFailed, "content", "A non-empty reason is required.", http.StatusBadRequest)
)

// comments
var (
	ErrCommentNotFound      = New(CodeNotFound, "comments", "Comment not found.", http.StatusNotFound)
	ErrInvalidParentComment = New(CodeValidationFailed, "comments", "Invalid parent comment", http.StatusBadRequest)
	ErrCommentEditDenied    = New(CodeForbidden, "comments", "You may not edit this comment", http.StatusForbidden)
	ErrCommentDeleteDenied  = New(CodeForbidden, "comments", "You may not delete this comment", http.StatusForbidden)
)

// notifications
var (
	ErrNotificationNotFound = New(CodeNotFound, "notifications", "Notification not found.", http.StatusNotFound)
)
