package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, RoleLabelManager.Can(CapManageContracts))
	assert.False(t, RoleListener.Can(CapManageContracts))
	assert.False(t, RoleArtist.Can(CapManageContracts))

	assert.True(t, RoleListener.Can(CapManagePlaylists))
	assert.True(t, RoleArtist.Can(CapManageAlbums))
	assert.True(t, RoleProducer.Can(CapManageBeats))
	assert.True(t, RoleProducer.Can(CapManageCollaborations))
	assert.True(t, RoleArtist.Can(CapViewCollaborations))
	assert.False(t, RoleArtist.Can(CapManageCollaborations))
}

func TestRoleRegistration(t *testing.T) {
	for _, r := range []Role{RoleArtist, RoleProducer, RoleListener, RoleLabelManager} {
		assert.True(t, r.SelfRegistrable(), r)
	}
	assert.False(t, RoleAdmin.SelfRegistrable())
	assert.False(t, Role("manager").Valid())
}
