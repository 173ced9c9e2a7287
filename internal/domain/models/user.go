package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConnectionRequest is an incoming request from another user.
// Status moves pending -> approved; approval also writes both users
// into each other's connections list.
type ConnectionRequest struct {
	From   primitive.ObjectID `bson:"from" json:"from"`
	Status string             `bson:"status" json:"status"` // pending | approved
}

// CartItem is a product reference with a quantity in a user's cart.
type CartItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// Feed controls what a user sees in the main post feed.
// Excluded posts are hidden from list queries; FYP holds the post
// categories the feed is tuned towards.
type Feed struct {
	Excluded []primitive.ObjectID `bson:"excluded" json:"excluded"`
	FYP      []string             `bson:"fyp" json:"fyp"`
}

// Referral tracks a user's referral code and the users it brought in.
// Code is unique across all users.
type Referral struct {
	Code          string               `bson:"code" json:"code"`
	TotalEarned   int                  `bson:"total_earned" json:"totalEarned"`
	AwardEarned   string               `bson:"award_earned" json:"awardEarned"`
	ReferredUsers []primitive.ObjectID `bson:"referred_users" json:"referredUsers"`
}

// CreditEntry records points credited against a product or donation.
type CreditEntry struct {
	Amount      int                `bson:"amount" json:"amount"`
	Date        time.Time          `bson:"date" json:"date"`
	ProductID   primitive.ObjectID `bson:"product_id,omitempty" json:"productId,omitempty"`
	Description string             `bson:"description" json:"description"`
}

// TokenDetails is a short-lived token with an expiry, used for both
// password resets and 2FA challenges.
type TokenDetails struct {
	Token   string    `bson:"token,omitempty" json:"-"`
	Expires time.Time `bson:"expires,omitempty" json:"-"`
}

// TierEntries counts entries earned per named tier. The tier names differ
// between donation tiers (Bronze..Diamond) and purchase tiers
// (Sprout..Champion), so both are stored as a name -> count map.
type TierEntries map[string]int

// ActivitiesValue tracks per-activity contribution counters.
type ActivitiesValue struct {
	WasteCleaning int `bson:"waste_cleaning" json:"wasteCleaning"`
	TreePlanting  int `bson:"tree_planting" json:"treePlanting"`
	Recycling     int `bson:"recycling" json:"recycling"`
}

// User is a member account. Users are created at signup and are never
// hard-deleted; moderation happens through the admin endpoints.
//
// Password holds the bcrypt hash and is excluded from JSON responses;
// list projections additionally strip it at the query level.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Contact  string             `bson:"contact" json:"contact"`

	Squads []primitive.ObjectID `bson:"squads" json:"squads"`
	Saves  []primitive.ObjectID `bson:"saves" json:"saves"`
	Images []string             `bson:"image" json:"image"`

	Connections        []primitive.ObjectID `bson:"connections" json:"connections"`
	ConnectionRequests []ConnectionRequest  `bson:"connection_requests" json:"connectionRequests"`

	Cart []CartItem `bson:"cart" json:"cart"`
	Feed Feed       `bson:"feed" json:"feed"`

	Balance          int `bson:"balance" json:"balance"`
	Donations        int `bson:"donations" json:"donations"`
	Purchases        int `bson:"purchases" json:"purchases"`
	TotalPointsSpent int `bson:"total_points_spent" json:"totalPointsSpent"`

	Referral Referral `bson:"referral" json:"referral"`

	ProductCredits     []CreditEntry `bson:"product_credits" json:"productCredits"`
	DonationCredits    []CreditEntry `bson:"donation_credits" json:"donationCredits"`
	TotalPointsDonated int           `bson:"total_points_donated" json:"totalPointsDonated"`

	DonationTierEntries TierEntries     `bson:"donation_tier_entries" json:"donationTierEntries"`
	PurchaseTierEntries TierEntries     `bson:"purchase_tier_entries" json:"purchaseTierEntries"`
	ActivitiesValue     ActivitiesValue `bson:"activities_value" json:"activitiesValue"`
	LeaderboardScore    int             `bson:"leaderboard_score" json:"leaderboardScore"`

	EmailVerified bool         `bson:"email_verified" json:"emailVerified"`
	ResetDetails  TokenDetails `bson:"reset_details,omitempty" json:"-"`
	AuthDetails   TokenDetails `bson:"auth_details,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
