// file: internals/features/finance/contacts/service/contact_directory.go
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   CONTACT DIRECTORY — kolaborator eksternal, dibaca lewat satu
   fungsi. Matching by name/email case-insensitive memang rapuh
   (warisan sistem induk); kegagalan resolve HARUS terlihat
   (ErrContactNotFound → event diparkir), bukan ditebak.
   TODO: ganti ke payer key stabil begitu API induk menyediakannya.
========================================================= */

var ErrContactNotFound = fiber.NewError(fiber.StatusNotFound, "contact tidak ditemukan")

// Resolve mencari contact id dari name/email. Email menang bila dua-
// duanya ada. Lebih dari satu kandidat diperlakukan sebagai gagal.
func Resolve(ctx context.Context, db *gorm.DB, name, email *string) (uuid.UUID, error) {
	type row struct {
		ContactID uuid.UUID `gorm:"column:contact_id"`
	}

	q := db.WithContext(ctx).Table("contacts").
		Select("contact_id").
		Where("contact_deleted_at IS NULL")

	switch {
	case email != nil && strings.TrimSpace(*email) != "":
		q = q.Where("LOWER(TRIM(contact_email)) = ?", strings.ToLower(strings.TrimSpace(*email)))
	case name != nil && strings.TrimSpace(*name) != "":
		q = q.Where("LOWER(TRIM(contact_name)) = ?", strings.ToLower(strings.TrimSpace(*name)))
	default:
		return uuid.Nil, ErrContactNotFound
	}

	var rows []row
	if err := q.Limit(2).Find(&rows).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrContactNotFound
		}
		return uuid.Nil, err
	}
	if len(rows) != 1 {
		// 0 = tidak ada match; >1 = ambigu, sama-sama tidak boleh ditebak
		return uuid.Nil, ErrContactNotFound
	}
	return rows[0].ContactID, nil
}
