package repositories

import (
	"context"
	"database/sql"
	"errors"

	"gruzBack/internal/models"
)

type LocationRepository struct {
	DB *sql.DB
}

// UpsertLocation stores the user's last known location and backfills the
// executor profile coordinates when the profile has none yet.
func (r *LocationRepository) UpsertLocation(ctx context.Context, loc models.UserLocation) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_locations (user_id, latitude, longitude, address, city, last_updated)
		VALUES (?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE latitude = VALUES(latitude), longitude = VALUES(longitude),
		                        address = VALUES(address), city = VALUES(city), last_updated = NOW()
	`, loc.UserID, loc.Latitude, loc.Longitude, loc.Address, loc.City)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE executor_profiles
		SET location_text = ?, latitude = ?, longitude = ?
		WHERE user_id = ? AND (latitude IS NULL OR longitude IS NULL)
	`, loc.Address, loc.Latitude, loc.Longitude, loc.UserID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *LocationRepository) GetLocation(ctx context.Context, userID int) (models.UserLocation, error) {
	var loc models.UserLocation
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, latitude, longitude, address, city, last_updated
		FROM user_locations WHERE user_id = ?
	`, userID).Scan(&loc.ID, &loc.UserID, &loc.Latitude, &loc.Longitude, &loc.Address, &loc.City, &loc.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserLocation{}, models.ErrLocationNotFound
	}
	if err != nil {
		return models.UserLocation{}, err
	}
	return loc, nil
}
