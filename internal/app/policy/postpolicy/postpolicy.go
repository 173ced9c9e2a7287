// Package postpolicy decides what a user may do to posts and comments.
// The rules deliberately mirror the product's existing behavior:
//
//   - Posting into a squad that has moderators is restricted to those
//     moderators (members of moderator-less squads may all post).
//   - Editing or deleting a post requires being BOTH its creator and a
//     moderator of its squad.
//   - Deleting a comment is restricted to its creator.
package postpolicy

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/verdantapp/verdant/internal/domain/models"
)

// CanPost reports whether the user may create a post in the squad.
// The user must be a member; if the squad defines moderators, the user
// must also be one of them.
func CanPost(squad *models.Squad, userID primitive.ObjectID) bool {
	if squad == nil || !squad.HasMember(userID) {
		return false
	}
	if len(squad.Moderators) > 0 && !squad.HasModerator(userID) {
		return false
	}
	return true
}

// CanManagePost reports whether the user may update or delete the post.
// The user must moderate the post's squad and be the post's creator;
// either condition failing denies.
func CanManagePost(squad *models.Squad, post *models.Post, userID primitive.ObjectID) bool {
	if squad == nil || post == nil {
		return false
	}
	return squad.HasModerator(userID) && post.Creator == userID
}

// CanDeleteComment reports whether the user may delete the comment.
// Only the comment's creator can.
func CanDeleteComment(comment *models.Comment, userID primitive.ObjectID) bool {
	return comment != nil && comment.Creator == userID
}
