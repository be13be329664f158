// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess       = "success"
	KeyError         = "error"
	KeyInternalError = "error.internal"
	KeyRateLimited   = "error.rate_limited"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthRoleNotAllowed     = "auth.role_not_allowed"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Access
	KeyAccessDenied = "access.denied"

	// Users
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserNotFound       = "user.not_found"
	KeyUserAccountDeleted = "user.account_deleted"
	KeyUserHasDependents  = "user.has_dependents"

	// Catalog
	KeyGenreNotFound       = "genre.not_found"
	KeyAlbumCreated        = "album.created"
	KeyAlbumUpdated        = "album.updated"
	KeyAlbumDeleted        = "album.deleted"
	KeyAlbumNotFound       = "album.not_found"
	KeyTrackCreated        = "track.created"
	KeyTrackUpdated        = "track.updated"
	KeyTrackDeleted        = "track.deleted"
	KeyTrackNotFound       = "track.not_found"
	KeyTrackNumberTaken    = "track.number_taken"
	KeySearchQueryTooShort = "search.query_too_short"

	// Playlists and favorites
	KeyPlaylistCreated           = "playlist.created"
	KeyPlaylistUpdated           = "playlist.updated"
	KeyPlaylistDeleted           = "playlist.deleted"
	KeyPlaylistNotFound          = "playlist.not_found"
	KeyPlaylistTrackAdded        = "playlist.track_added"
	KeyPlaylistTrackAlreadyAdded = "playlist.track_already_added"
	KeyPlaylistTrackRemoved      = "playlist.track_removed"
	KeyPlaylistDuration          = "playlist.duration"
	KeyFavoriteAdded             = "favorite.added"
	KeyFavoriteRemoved           = "favorite.removed"

	// Contracts
	KeyContractCreated  = "contract.created"
	KeyContractUpdated  = "contract.updated"
	KeyContractDeleted  = "contract.deleted"
	KeyContractNotFound = "contract.not_found"

	// Beats and collaborations
	KeyBeatCreated           = "beat.created"
	KeyBeatUpdated           = "beat.updated"
	KeyBeatDeleted           = "beat.deleted"
	KeyBeatNotFound          = "beat.not_found"
	KeyCollaborationCreated  = "collaboration.created"
	KeyCollaborationUpdated  = "collaboration.updated"
	KeyCollaborationDeleted  = "collaboration.deleted"
	KeyCollaborationNotFound = "collaboration.not_found"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"

	// File Upload
	KeyFileUploadSuccess = "file.upload_success"
	KeyFileUploadFailed  = "file.upload_failed"
	KeyFileInvalidType   = "file.invalid_type"
	KeyFileTooLarge      = "file.too_large"

	// Notifications
	KeyNotificationContractCreatedTitle = "notification.contract_created.title"
	KeyNotificationContractCreatedBody  = "notification.contract_created.body"
	KeyNotificationContractStatusTitle  = "notification.contract_status.title"
	KeyNotificationContractStatusBody   = "notification.contract_status.body"
	KeyNotificationCollaborationTitle   = "notification.collaboration_invite.title"
	KeyNotificationCollaborationBody    = "notification.collaboration_invite.body"
	KeyNotificationNotFound             = "notification.not_found"
	KeyNotificationRead                 = "notification.read"
)
