package application

import "sync"

// DeviceCache holds the most recently seen deviceInfo and settings documents.
// The REST fetch path and the MQTT dispatcher are the only writers; callers
// must treat returned documents as read-only.
type DeviceCache struct {
	mu         sync.RWMutex
	deviceInfo Document
	settings   Document
}

func NewDeviceCache() *DeviceCache {
	return &DeviceCache{}
}

func (c *DeviceCache) DeviceInfo() Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceInfo
}

func (c *DeviceCache) Settings() Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

func (c *DeviceCache) SetDeviceInfo(doc Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deviceInfo = doc
}

func (c *DeviceCache) SetSettings(doc Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings = doc
}
