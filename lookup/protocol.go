package lookup

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Device identification sent with every upstream request. The upstream
// service expects an Android client of this version.
const (
	HeaderOS             = "X-Os"
	HeaderMobileService  = "X-Mobile-Service"
	HeaderAppVersion     = "X-App-Version"
	HeaderClientDeviceID = "X-Client-Device-Id"
	HeaderLang           = "X-Lang"
	HeaderToken          = "X-Token"
	HeaderReqTimestamp   = "X-Req-Timestamp"
	HeaderEncrypted      = "X-Encrypted"
	HeaderNetworkCountry = "X-Network-Country"
	HeaderCountryCode    = "X-Country-Code"
	HeaderReqSignature   = "X-Req-Signature"
	HeaderContentType    = "Content-Type"

	ContentTypeJSON = "application/json"

	DefaultOS            = "android 9"
	DefaultMobileService = "GMS"
	DefaultAppVersion    = "5.6.2"
	DefaultDeviceID      = "063579f5e0654a4e"
	DefaultLang          = "en_US"
	DefaultRegion        = "us"

	payloadSource = "profile"
)

// payload is the plaintext request body. Field order is the order the
// upstream service signs and must not change.
type payload struct {
	CountryCode string `json:"countryCode"`
	PhoneNumber string `json:"phoneNumber"`
	Source      string `json:"source"`
	Token       string `json:"token"`
}

var errNotObject = errors.New("response is not a JSON object")

// envelope wraps a base64 ciphertext in both directions.
type envelope struct {
	Data string `json:"data"`
}

// marshalCompact serializes v without HTML escaping or a trailing newline,
// byte-identical to JSON.stringify for the values this package sends.
func marshalCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// ParseTags decodes a decrypted upstream response and returns its tags. It
// fails only when the document is not a JSON object.
func ParseTags(plainText []byte) ([]string, error) {
	var doc map[string]any
	if err := json.Unmarshal(plainText, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errNotObject
	}
	return ExtractTags(doc), nil
}

// ExtractTags collects result.tags[].tag in upstream order. Entries that
// are not objects or lack a string tag are skipped. The result is never nil.
func ExtractTags(doc map[string]any) []string {
	tags := []string{}
	result, ok := doc["result"].(map[string]any)
	if !ok {
		return tags
	}
	entries, ok := result["tags"].([]any)
	if !ok {
		return tags
	}
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}
		if tag, ok := entry["tag"].(string); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}
