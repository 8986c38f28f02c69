package domain

import (
	"time"

	authdomain "github.com/health-wallet/go-wallet-backend/internal/auth/domain"
	reportsdomain "github.com/health-wallet/go-wallet-backend/internal/reports/domain"
)

// AccessTypeRead is the only access level grants carry today. The column
// exists for future levels and is stored verbatim, never branched on.
const AccessTypeRead = "read"

// AccessGrant links one report to one non-owner recipient. It confers a
// read capability only; delete, revoke, and re-share stay with the owner.
type AccessGrant struct {
	ID         string    `json:"id"`
	ReportID   string    `json:"report_id"`
	OwnerID    string    `json:"owner_id"`
	GranteeID  string    `json:"shared_with_id"`
	AccessType string    `json:"access_type"`
	CreatedAt  time.Time `json:"created_at"`
}

// OwnedShare is one row of the owner's "my shares" listing.
type OwnedShare struct {
	AccessGrant
	ReportTitle string             `json:"report_title"`
	ReportType  string             `json:"report_type"`
	Grantee     authdomain.Summary `json:"shared_with"`
}

// SharedReport is one row of the grantee's "shared with me" listing.
type SharedReport struct {
	reportsdomain.Report
	AccessType string             `json:"access_type"`
	SharedAt   time.Time          `json:"shared_at"`
	Owner      authdomain.Summary `json:"owner"`
}
