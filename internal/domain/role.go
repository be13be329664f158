// internal/domain/role.go
package domain

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleArtist       Role = "artist"
	RoleProducer     Role = "producer"
	RoleListener     Role = "listener"
	RoleLabelManager Role = "label_manager"
)

func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// SelfRegistrable reports whether the role can be chosen at sign-up.
func (r Role) SelfRegistrable() bool {
	return r.Valid() && r != RoleAdmin
}

type Capability string

const (
	CapManageAlbums         Capability = "manage_albums"
	CapManageBeats          Capability = "manage_beats"
	CapManageCollaborations Capability = "manage_collaborations"
	CapViewCollaborations   Capability = "view_collaborations"
	CapManagePlaylists      Capability = "manage_playlists"
	CapManageContracts      Capability = "manage_contracts"
)

var roleCapabilities = map[Role][]Capability{
	RoleAdmin:        {},
	RoleArtist:       {CapManageAlbums, CapViewCollaborations},
	RoleProducer:     {CapManageBeats, CapManageCollaborations, CapViewCollaborations},
	RoleListener:     {CapManagePlaylists},
	RoleLabelManager: {CapManageContracts},
}

func (r Role) Capabilities() []Capability {
	return roleCapabilities[r]
}

func (r Role) Can(c Capability) bool {
	for _, have := range roleCapabilities[r] {
		if have == c {
			return true
		}
	}
	return false
}
