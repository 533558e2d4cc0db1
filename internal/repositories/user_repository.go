package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"gruzBack/internal/models"
)

type UserRepository struct {
	DB *sql.DB
}

// CreateUser inserts or refreshes a user on first contact. The caller supplies
// the external numeric identity, so a repeated call only updates the names.
func (r *UserRepository) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	if u.Role == "" {
		u.Role = models.RoleCustomer
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (id, username, full_name, role, rating, created_at)
		VALUES (?, ?, ?, ?, 5.0, NOW())
		ON DUPLICATE KEY UPDATE username = VALUES(username), full_name = VALUES(full_name)
	`, u.ID, u.Username, u.FullName, u.Role)
	if err != nil {
		return models.User{}, err
	}
	return r.GetUser(ctx, u.ID)
}

func (r *UserRepository) SignUpUser(ctx context.Context, u models.User) (models.User, error) {
	var count int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE phone = ?`, u.Phone).Scan(&count); err != nil {
		return models.User{}, err
	}
	if count > 0 {
		return models.User{}, models.ErrDuplicatePhone
	}

	result, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (username, full_name, phone, password, role, rating, created_at)
		VALUES (?, ?, ?, ?, ?, 5.0, NOW())
	`, u.Username, u.FullName, u.Phone, u.Password, models.RoleCustomer)
	// The unique key on phone catches a concurrent sign-up that slipped past
	// the COUNT check above.
	if isDuplicateEntry(err) {
		return models.User{}, models.ErrDuplicatePhone
	}
	if err != nil {
		return models.User{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	u.ID = int(id)
	u.Password = ""
	return u, nil
}

// isDuplicateEntry reports MySQL error 1062, a unique key violation.
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

func (r *UserRepository) GetUser(ctx context.Context, id int) (models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, COALESCE(username, ''), COALESCE(full_name, ''), COALESCE(phone, ''), role, rating, created_at
		FROM users WHERE id = ?
	`, id).Scan(&u.ID, &u.Username, &u.FullName, &u.Phone, &u.Role, &u.Rating, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *UserRepository) GetUserByPhone(ctx context.Context, phone string) (models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, COALESCE(username, ''), COALESCE(full_name, ''), COALESCE(phone, ''), COALESCE(password, ''), role, rating, created_at
		FROM users WHERE phone = ?
	`, phone).Scan(&u.ID, &u.Username, &u.FullName, &u.Phone, &u.Password, &u.Role, &u.Rating, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (r *UserRepository) UpdateUserRole(ctx context.Context, userID int, role string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE users SET role = ? WHERE id = ?`, role, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	// MySQL reports 0 affected rows when the role is unchanged, so an
	// idempotent re-set must not be mistaken for a missing user.
	if affected == 0 {
		var marker int
		if err := r.DB.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, userID).Scan(&marker); errors.Is(err, sql.ErrNoRows) {
			return models.ErrUserNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

func (r *UserRepository) UpdateUserRating(ctx context.Context, userID int, rating float64) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE users SET rating = ? WHERE id = ?`, rating, userID)
	return err
}

func (r *UserRepository) CreateSession(ctx context.Context, s models.Session) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO sessions (user_id, role, refresh_token, expires_at)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE refresh_token = VALUES(refresh_token), expires_at = VALUES(expires_at)
	`, s.UserID, s.Role, s.RefreshToken, s.ExpiresAt)
	return err
}

func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (models.Session, error) {
	var s models.Session
	err := r.DB.QueryRowContext(ctx, `
		SELECT user_id, role, refresh_token, expires_at FROM sessions WHERE refresh_token = ?
	`, refreshToken).Scan(&s.UserID, &s.Role, &s.RefreshToken, &s.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, models.ErrSessionNotFound
	}
	if err != nil {
		return models.Session{}, err
	}
	return s, nil
}

// CreateExecutorProfile lazily creates the profile row with default bounds.
// Existing profiles are left untouched.
func (r *UserRepository) CreateExecutorProfile(ctx context.Context, userID int) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT IGNORE INTO executor_profiles (user_id, work_radius_km, min_price, max_price, created_at, updated_at)
		VALUES (?, 20, 1000, 50000, NOW(), NOW())
	`, userID)
	return err
}

func (r *UserRepository) GetExecutorProfile(ctx context.Context, userID int) (models.ExecutorProfile, error) {
	var p models.ExecutorProfile
	err := r.DB.QueryRowContext(ctx, `
		SELECT ep.id, ep.user_id, ep.company_name, ep.phone, ep.description,
		       ep.experience_years, ep.license_number, ep.insurance_info,
		       ep.work_radius_km, ep.min_price, ep.max_price, ep.service_filter,
		       ep.location_text, ep.latitude, ep.longitude, ep.is_verified,
		       ep.created_at, ep.updated_at,
		       u.username, u.full_name, u.rating
		FROM executor_profiles ep
		LEFT JOIN users u ON ep.user_id = u.id
		WHERE ep.user_id = ?
	`, userID).Scan(
		&p.ID, &p.UserID, &p.CompanyName, &p.Phone, &p.Description,
		&p.ExperienceYears, &p.LicenseNumber, &p.InsuranceInfo,
		&p.WorkRadiusKm, &p.MinPrice, &p.MaxPrice, &p.ServiceFilter,
		&p.LocationText, &p.Latitude, &p.Longitude, &p.IsVerified,
		&p.CreatedAt, &p.UpdatedAt,
		&p.Username, &p.FullName, &p.Rating,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ExecutorProfile{}, models.ErrProfileNotFound
	}
	if err != nil {
		return models.ExecutorProfile{}, err
	}
	return p, nil
}

// UpdateExecutorProfile applies only the fields set on the patch.
func (r *UserRepository) UpdateExecutorProfile(ctx context.Context, userID int, patch models.ExecutorProfilePatch) error {
	var (
		sets   []string
		params []interface{}
	)
	add := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = ?", column))
		params = append(params, value)
	}

	if patch.CompanyName != nil {
		add("company_name", *patch.CompanyName)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.ExperienceYears != nil {
		add("experience_years", *patch.ExperienceYears)
	}
	if patch.LicenseNumber != nil {
		add("license_number", *patch.LicenseNumber)
	}
	if patch.InsuranceInfo != nil {
		add("insurance_info", *patch.InsuranceInfo)
	}
	if patch.WorkRadiusKm != nil {
		add("work_radius_km", *patch.WorkRadiusKm)
	}
	if patch.MinPrice != nil {
		add("min_price", *patch.MinPrice)
	}
	if patch.MaxPrice != nil {
		add("max_price", *patch.MaxPrice)
	}
	if patch.ServiceFilter != nil {
		add("service_filter", *patch.ServiceFilter)
	}
	if patch.LocationText != nil {
		add("location_text", *patch.LocationText)
	}
	if patch.Latitude != nil {
		add("latitude", *patch.Latitude)
	}
	if patch.Longitude != nil {
		add("longitude", *patch.Longitude)
	}

	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE executor_profiles SET %s, updated_at = NOW() WHERE user_id = ?`, strings.Join(sets, ", "))
	params = append(params, userID)

	res, err := r.DB.ExecContext(ctx, query, params...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var marker int
		if err := r.DB.QueryRowContext(ctx, `SELECT 1 FROM executor_profiles WHERE user_id = ?`, userID).Scan(&marker); errors.Is(err, sql.ErrNoRows) {
			return models.ErrProfileNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

func (r *UserRepository) GetUserStats(ctx context.Context, userID int) (models.UserStats, error) {
	user, err := r.GetUser(ctx, userID)
	if err != nil {
		return models.UserStats{}, err
	}

	stats := models.UserStats{User: user, AverageRating: user.Rating}

	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = ?`, userID).Scan(&stats.OrdersCount); err != nil {
		return models.UserStats{}, err
	}
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM offers WHERE executor_id = ?`, userID).Scan(&stats.OffersCount); err != nil {
		return models.UserStats{}, err
	}
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE user_id = ? AND status = ?`, userID, models.OrderStatusCompleted).Scan(&stats.CompletedOrders); err != nil {
		return models.UserStats{}, err
	}
	return stats, nil
}
