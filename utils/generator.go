package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/kimanzi254/consult_admin/models"
	"gorm.io/gorm"
)

const roomCodeLength = 10
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateUniqueMeetingLink mints a meeting room URL whose code no other
// booking already uses.
func GenerateUniqueMeetingLink(tx *gorm.DB, baseURL string) (string, error) {
	seededRand := rand.New(rand.NewSource(time.Now().UnixNano()))

	for {
		b := make([]byte, roomCodeLength)
		for i := range b {
			b[i] = letterBytes[seededRand.Intn(len(letterBytes))]
		}
		link := fmt.Sprintf("%s/room/%s", baseURL, string(b))

		var booking models.Booking
		err := tx.Where("meeting_link = ?", link).First(&booking).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return link, nil
			}
			return "", err
		}
	}
}
