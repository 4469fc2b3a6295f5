package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gibbz00/language-service-go/protocol"
)

func TestFilter_HandleInbound_ShutdownRequest(t *testing.T) {
	f := NewFilter(ServerRole, nil)
	req := protocol.NewRequest[struct{}](protocol.IntID(0), protocol.MethodShutdown, &struct{}{})

	toBackend, toWire, err := f.HandleInbound(context.Background(), req)
	require.NoError(t, err)
	require.Nil(t, toWire)
	require.NotNil(t, toBackend)
	require.NotNil(t, toBackend.Request)
	assert.Equal(t, protocol.MethodShutdown, toBackend.Request.MethodName())
}

func TestFilter_HandleInbound_InvalidDirection(t *testing.T) {
	f := NewFilter(ServerRole, nil)
	req := protocol.NewRequest[protocol.ShowDocumentParams](protocol.IntID(1), protocol.MethodWindowShowDocument, &protocol.ShowDocumentParams{})

	toBackend, toWire, err := f.HandleInbound(context.Background(), req)
	require.NoError(t, err)
	require.Nil(t, toBackend)
	require.NotNil(t, toWire)

	assert.True(t, toWire.HasError())
	assert.Equal(t, protocol.InternalError, toWire.Err.Code)
	assert.Contains(t, toWire.Err.Message, "invalid message")

	gotID, ok := toWire.ID.AsRequestID()
	require.True(t, ok)
	assert.Equal(t, int64(1), gotID.Int())

	var echoed map[string]any
	require.NoError(t, json.Unmarshal(toWire.Err.Data, &echoed))
	assert.Equal(t, protocol.MethodWindowShowDocument, echoed["method"])
}

func TestFilter_HandleInbound_InvalidDirection_Notification(t *testing.T) {
	f := NewFilter(ServerRole, nil)
	notif := protocol.NewNotification[protocol.ShowMessageParams](protocol.MethodWindowShowMessage, &protocol.ShowMessageParams{Message: "hi"})

	toBackend, toWire, err := f.HandleInbound(context.Background(), notif)
	require.NoError(t, err)
	require.Nil(t, toBackend)
	require.NotNil(t, toWire)

	assert.True(t, toWire.HasError())
	assert.Equal(t, protocol.InternalError, toWire.Err.Code)
	assert.Contains(t, toWire.Err.Message, "invalid message")
	assert.True(t, toWire.ID.IsNull(), "a notification has no id to echo back")

	var echoed map[string]any
	require.NoError(t, json.Unmarshal(toWire.Err.Data, &echoed))
	assert.Equal(t, protocol.MethodWindowShowMessage, echoed["method"])
}

func TestFilter_HandleInbound_OrphanResponse(t *testing.T) {
	f := NewFilter(ServerRole, nil)
	u := protocol.UntypedResponseMessage{ID: protocol.FromRequestID(protocol.IntID(99))}

	toBackend, toWire, err := f.HandleInbound(context.Background(), u)
	require.NoError(t, err)
	assert.Nil(t, toBackend)
	assert.Nil(t, toWire)
}

func TestFilter_OutboundCorrelation_RoundTrip(t *testing.T) {
	f := NewFilter(ClientRole, nil)
	id := protocol.StringID("abc")
	req := protocol.NewRequest[protocol.RenameFilesParams](id, protocol.MethodWorkspaceWillRenameFiles, &protocol.RenameFilesParams{})

	wireMsg, err := f.HandleOutbound(context.Background(), Outgoing{Request: req})
	require.NoError(t, err)
	assert.Equal(t, req, wireMsg)
	assert.Equal(t, 1, f.Pending())

	result := protocol.WillRenameFilesResult{}
	raw, err := json.Marshal(result)
	require.NoError(t, err)
	resp := protocol.UntypedResponseMessage{ID: protocol.FromRequestID(id), Result: raw}

	toBackend, toWire, err := f.HandleInbound(context.Background(), resp)
	require.NoError(t, err)
	require.Nil(t, toWire)
	require.NotNil(t, toBackend)

	typed, ok := toBackend.Response.(protocol.Response[protocol.WillRenameFilesResult])
	require.True(t, ok)
	gotID, ok := typed.ID.AsRequestID()
	require.True(t, ok)
	assert.Equal(t, id.String(), gotID.String())
	assert.Equal(t, 0, f.Pending())
}

func TestFilter_HandleOutbound_Notification(t *testing.T) {
	f := NewFilter(ServerRole, nil)
	notif := protocol.NewNotification[protocol.ShowMessageParams](protocol.MethodWindowShowMessage, &protocol.ShowMessageParams{Message: "hi"})

	msg, err := f.HandleOutbound(context.Background(), Outgoing{Notification: notif})
	require.NoError(t, err)
	assert.Equal(t, notif, msg)
	assert.Equal(t, 0, f.Pending())
}

func TestFilter_HandleOutbound_Response(t *testing.T) {
	f := NewFilter(ServerRole, nil)
	resp := protocol.Response[protocol.ShutdownResult]{ID: protocol.FromRequestID(protocol.IntID(0)), Result: &protocol.ShutdownResult{}}

	msg, err := f.HandleOutbound(context.Background(), Outgoing{Response: resp})
	require.NoError(t, err)
	u, ok := msg.(protocol.UntypedResponseMessage)
	require.True(t, ok)
	assert.False(t, u.HasError())
}
