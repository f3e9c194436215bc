// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so every problem is visible and startup can fail
fast.

The unique indexes here are load-bearing: they close the read-then-write
races on pre-registration (college_id, email), account creation
(auth account email), and hackathon registration
(hackathon_id + student_college_id). Stores translate duplicate-key
write errors into their domain sentinels.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureCollegeUsers(ctx, db); err != nil {
		problems = append(problems, "college_users: "+err.Error())
	}
	if err := ensureAuthAccounts(ctx, db); err != nil {
		problems = append(problems, "auth_accounts: "+err.Error())
	}
	if err := ensureHackathons(ctx, db); err != nil {
		problems = append(problems, "hackathons: "+err.Error())
	}
	if err := ensureRegistrations(ctx, db); err != nil {
		problems = append(problems, "hackathon_registrations: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureCollegeUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("college_users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "college_id", Value: 1}},
			Options: options.Index().SetName("uniq_college_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		},
		{
			// Bearer-token resolution path: account id -> profile.
			Keys: bson.D{{Key: "auth_user_id", Value: 1}},
			Options: options.Index().SetName("by_auth_user_id").
				SetPartialFilterExpression(bson.M{"auth_user_id": bson.M{"$type": "string"}}),
		},
		{
			// Department stats aggregate over student profiles.
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "department", Value: 1}},
			Options: options.Index().SetName("by_role_department"),
		},
	})
}

func ensureAuthAccounts(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("auth_accounts"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("uniq_email").SetUnique(true),
		},
	})
}

func ensureHackathons(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("hackathons"), []mongo.IndexModel{
		{
			// Listing order: soonest deadline first, newest first among ties.
			Keys:    bson.D{{Key: "deadline", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_deadline_created"),
		},
		{
			Keys:    bson.D{{Key: "link", Value: 1}},
			Options: options.Index().SetName("by_link"),
		},
		{
			Keys:    bson.D{{Key: "title_ci", Value: 1}},
			Options: options.Index().SetName("by_title_ci"),
		},
	})
}

func ensureRegistrations(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("hackathon_registrations"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "hackathon_id", Value: 1}, {Key: "student_college_id", Value: 1}},
			Options: options.Index().SetName("uniq_hackathon_student").SetUnique(true),
		},
	})
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, idxModels []mongo.IndexModel) error {
	var errs []string

	for _, m := range idxModels {
		name := ""
		unique := false
		if m.Options != nil {
			if m.Options.Name != nil {
				name = *m.Options.Name
			}
			if m.Options.Unique != nil {
				unique = *m.Options.Unique
			}
		}

		zap.L().Info("ensuring index",
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.Bool("unique", unique))

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			// CreateOne is a no-op when an identical index exists; an
			// options conflict means a stale index with the same keys.
			if isOptionsConflictErr(err) {
				if name != "" {
					if _, dropErr := coll.Indexes().DropOne(ctx, name); dropErr == nil {
						if _, retryErr := coll.Indexes().CreateOne(ctx, m); retryErr == nil {
							continue
						}
					}
				}
			}
			errs = append(errs, name+": "+err.Error())
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with
// the same keys already exists under a different name or options.
func isOptionsConflictErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
}
