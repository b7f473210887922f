// document.go
//
// Storefront data service for the bakery brand site
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of bakery-api.
// bakery-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// bakery-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with bakery-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package models

import "time"

// Document is one persisted collection document in the SQL backend.
// A row at version 0 is a lock placeholder for a document not yet written.
type Document struct {
	DocumentName    string `gorm:"primaryKey;size:191"`
	DocumentVersion uint64 `gorm:"not null;default:0"`
	Body            JSON
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BlobObject is one stored gallery image in the SQL backend
type BlobObject struct {
	BlobKey     string `gorm:"primaryKey;size:191"`
	ContentType string `gorm:"size:255"`
	Data        []byte
	CreatedAt   time.Time
}

// TableName overrides the table name for Document
func (Document) TableName() string {
	return "bakery_documents"
}

// TableName overrides the table name for BlobObject
func (BlobObject) TableName() string {
	return "bakery_blobs"
}
