package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Profile, error)
	GetByID(ctx context.Context, id uint) (Profile, error)
	GetByUserID(ctx context.Context, userID uint) (Profile, error)
	Create(ctx context.Context, p Profile) (Profile, error)
	Update(ctx context.Context, id uint, input AdminUpdateInput) (Profile, error)
	UpdateByUserID(ctx context.Context, userID uint, input SelfUpdateInput) (Profile, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// profileColumns joins in the derived order count and spend so every read
// carries them without a second round trip.
const profileColumns = `
	p.id, p.user_id, p.phone, p.email, p.shipping_address, p.billing_address,
	p.points, p.membership_level, p.wants_newsletter, p.profile_image, p.created_at,
	COALESCE(o.total_orders, 0), COALESCE(o.total_spent, 0)
`

const ordersJoin = `
	LEFT JOIN (
		SELECT user_id, COUNT(*) AS total_orders, SUM(total_amount) AS total_spent
		FROM orders
		GROUP BY user_id
	) o ON o.user_id = p.user_id
`

func scanProfile(row interface{ Scan(...any) error }) (Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.UserID, &p.Phone, &p.Email, &p.ShippingAddress, &p.BillingAddress,
		&p.Points, &p.MembershipLevel, &p.WantsNewsletter, &p.ProfileImage, &p.CreatedAt,
		&p.TotalOrders, &p.TotalSpent)
	return p, err
}

func (r *repository) GetAll(ctx context.Context) ([]Profile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+profileColumns+` FROM customer_profiles p `+ordersJoin+` ORDER BY p.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	profiles := []Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id uint) (Profile, error) {
	p, err := scanProfile(r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM customer_profiles p `+ordersJoin+` WHERE p.id = $1`, id))

	if err == sql.ErrNoRows {
		return Profile{}, ErrProfileNotFound
	}
	return p, err
}

func (r *repository) GetByUserID(ctx context.Context, userID uint) (Profile, error) {
	p, err := scanProfile(r.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM customer_profiles p `+ordersJoin+` WHERE p.user_id = $1`, userID))

	if err == sql.ErrNoRows {
		return Profile{}, ErrProfileNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, p Profile) (Profile, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO customer_profiles
			(user_id, phone, email, shipping_address, billing_address, points,
			 membership_level, wants_newsletter, profile_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, p.UserID, p.Phone, p.Email, p.ShippingAddress, p.BillingAddress, p.Points,
		p.MembershipLevel, p.WantsNewsletter, p.ProfileImage).
		Scan(&p.ID, &p.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch string(pqErr.Code) {
			case PgUniqueViolation:
				return Profile{}, ErrProfileExists
			case PgForeignKeyViolation:
				return Profile{}, ErrBadUser
			}
		}
		return Profile{}, err
	}
	return p, nil
}

func (r *repository) Update(ctx context.Context, id uint, input AdminUpdateInput) (Profile, error) {
	var profileID uint
	err := r.db.QueryRowContext(ctx, `
		UPDATE customer_profiles
		SET phone            = COALESCE($2, phone),
		    email            = COALESCE($3, email),
		    shipping_address = COALESCE($4, shipping_address),
		    billing_address  = COALESCE($5, billing_address),
		    points           = COALESCE($6, points),
		    membership_level = COALESCE($7, membership_level),
		    wants_newsletter = COALESCE($8, wants_newsletter),
		    profile_image    = COALESCE($9, profile_image)
		WHERE id = $1
		RETURNING id
	`, id, input.Phone, input.Email, input.ShippingAddress, input.BillingAddress,
		input.Points, input.MembershipLevel, input.WantsNewsletter, input.ProfileImage).
		Scan(&profileID)

	if err == sql.ErrNoRows {
		return Profile{}, ErrProfileNotFound
	}
	if err != nil {
		return Profile{}, err
	}

	// re-read through the derived-totals join
	return r.GetByID(ctx, profileID)
}

func (r *repository) UpdateByUserID(ctx context.Context, userID uint, input SelfUpdateInput) (Profile, error) {
	var profileID uint
	err := r.db.QueryRowContext(ctx, `
		UPDATE customer_profiles
		SET phone            = COALESCE($2, phone),
		    email            = COALESCE($3, email),
		    shipping_address = COALESCE($4, shipping_address),
		    billing_address  = COALESCE($5, billing_address),
		    wants_newsletter = COALESCE($6, wants_newsletter),
		    profile_image    = COALESCE($7, profile_image)
		WHERE user_id = $1
		RETURNING id
	`, userID, input.Phone, input.Email, input.ShippingAddress, input.BillingAddress,
		input.WantsNewsletter, input.ProfileImage).
		Scan(&profileID)

	if err == sql.ErrNoRows {
		return Profile{}, ErrProfileNotFound
	}
	if err != nil {
		return Profile{}, err
	}

	return r.GetByID(ctx, profileID)
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customer_profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProfileNotFound
	}
	return nil
}
