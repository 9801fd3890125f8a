package fullykiosk

import "context"

// Thin wrappers over the remote admin command surface: one request per
// operation, parameters as named by the device API.

func (c *Client) StartScreensaver(ctx context.Context) error {
	_, err := c.SendCommand(ctx, "startScreensaver", nil)
	return err
}

func (c *Client) StopScreensaver(ctx context.Context) error {
	_, err := c.SendCommand(ctx, "stopScreensaver", nil)
	return err
}

func (c *Client) ScreenOn(ctx context.Context) error {
	_, err := c.SendCommand(ctx, "screenOn", nil)
	return err
}

func (c *Client) ScreenOff(ctx context.Context) error {
	_, err := c.SendCommand(ctx, "screenOff", nil)
	return err
}

func (c *Client) SetScreenBrightness(ctx context.Context, brightness int) error {
	return c.SetConfigurationString(ctx, "screenBrightness", brightness)
}

// SetAudioVolume sets the volume of an audio stream; stream is optional.
func (c *Client) SetAudioVolume(ctx context.Context, level int, stream *int) error {
	params := map[string]any{"level": level}
	if stream != nil {
		params["stream"] = *stream
	}
	_, err := c.SendCommand(ctx, "setAudioVolume", params)
	return err
}

func (c *Client) RestartApp(ctx context.Context) error {
	_, err := c.SendCommand(ctx, "restartApp", nil)
	return err
}

func (c *Client) LoadStartURL(ctx context.Context) error {
	_, err := c.SendCommand(ctx, "loadStartUrl", nil)
	return err
}

func (c *Client) LoadURL(ctx context.Context, url string) error {
	_, err := c.SendCommand(ctx, "loadUrl", map[string]any{"url": url})
	return err
}

// PlaySound plays a sound file from a URL; stream is optional.
func (c *Client) PlaySound(ctx context.Context, url string, stream *int) error {
	params := map[string]any{"url": url}
	if stream != nil {
		params["stream"] = *stream
	}
	_, err := c.SendCommand(ctx, "playSound", params)
	return err
}

func (c *Client) StopSound(ctx context.Context) error {
	_, err := c.SendCommand(ctx, "stopSound", nil)
	return err
}

func (c *Client) ToForeground(ctx context.Context) error {
	_, err := c.SendCommand(ctx, "toForeground", nil)
	return err
}

func (c *Client) ToBackground(ctx context.Context) error {
	_, err := c.SendCommand(ctx, "toBackground", nil)
	return err
}

func (c *Client) StartApplication(ctx context.Context, pkg string) error {
	_, err := c.SendCommand(ctx, "startApplication", map[string]any{"package": pkg})
	return err
}

func (c *Client) SetConfigurationString(ctx context.Context, key string, value any) error {
	_, err := c.SendCommand(ctx, "setStringSetting", map[string]any{"key": key, "value": value})
	return err
}

func (c *Client) SetConfigurationBool(ctx context.Context, key string, value bool) error {
	_, err := c.SendCommand(ctx, "setBooleanSetting", map[string]any{"key": key, "value": value})
	return err
}

func (c *Client) EnableLockedMode(ctx context.Context) error {
	_, err := c.SendCommand(ctx, "enableLockedMode", nil)
	return err
}

func (c *Client) DisableLockedMode(ctx context.Context) error {
	_, err := c.SendCommand(ctx, "disableLockedMode", nil)
	return err
}

func (c *Client) LockKiosk(ctx context.Context) error {
	_, err := c.SendCommand(ctx, "lockKiosk", nil)
	return err
}

func (c *Client) UnlockKiosk(ctx context.Context) error {
	_, err := c.SendCommand(ctx, "unlockKiosk", nil)
	return err
}

func (c *Client) EnableMotionDetection(ctx context.Context) error {
	return c.SetConfigurationBool(ctx, "motionDetection", true)
}

func (c *Client) DisableMotionDetection(ctx context.Context) error {
	return c.SetConfigurationBool(ctx, "motionDetection", false)
}

func (c *Client) TriggerMotion(ctx context.Context) error {
	_, err := c.SendCommand(ctx, "triggerMotion", nil)
	return err
}

func (c *Client) RebootDevice(ctx context.Context) error {
	_, err := c.SendCommand(ctx, "rebootDevice", nil)
	return err
}

func (c *Client) TextToSpeech(ctx context.Context, text string) error {
	_, err := c.SendCommand(ctx, "textToSpeech", map[string]any{"text": text})
	return err
}

func (c *Client) ClearCache(ctx context.Context) error {
	_, err := c.SendCommand(ctx, "clearCache", nil)
	return err
}

func (c *Client) ClearCookies(ctx context.Context) error {
	_, err := c.SendCommand(ctx, "clearCookies", nil)
	return err
}

// Screenshot returns a capture of the device screen as raw image bytes.
func (c *Client) Screenshot(ctx context.Context) ([]byte, error) {
	return c.sendBinary(ctx, "getScreenshot", nil)
}

// Camshot returns a capture from the device camera as raw image bytes.
func (c *Client) Camshot(ctx context.Context) ([]byte, error) {
	return c.sendBinary(ctx, "getCamshot", nil)
}
