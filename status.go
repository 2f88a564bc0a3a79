package wsendpoint

import "github.com/coder/websocket"

type CloseStatus = websocket.StatusCode

const (
	StatusNormalClosure           CloseStatus = websocket.StatusNormalClosure
	StatusGoingAway               CloseStatus = websocket.StatusGoingAway
	StatusProtocolError           CloseStatus = websocket.StatusProtocolError
	StatusUnsupportedData         CloseStatus = websocket.StatusUnsupportedData
	StatusNoStatusRcvd            CloseStatus = websocket.StatusNoStatusRcvd
	StatusAbnormalClosure         CloseStatus = websocket.StatusAbnormalClosure
	StatusInvalidFramePayloadData CloseStatus = websocket.StatusInvalidFramePayloadData
	StatusPolicyViolation         CloseStatus = websocket.StatusPolicyViolation
	StatusMessageTooBig           CloseStatus = websocket.StatusMessageTooBig
	StatusMandatoryExtension      CloseStatus = websocket.StatusMandatoryExtension
	StatusInternalError           CloseStatus = websocket.StatusInternalError
	StatusServiceRestart          CloseStatus = websocket.StatusServiceRestart
	StatusTryAgainLater           CloseStatus = websocket.StatusTryAgainLater
	StatusBadGateway              CloseStatus = websocket.StatusBadGateway
	StatusTLSHandshake            CloseStatus = websocket.StatusTLSHandshake
)

type MessageType = websocket.MessageType

const (
	MessageText   MessageType = websocket.MessageText
	MessageBinary MessageType = websocket.MessageBinary
)
