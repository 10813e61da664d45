package config

type AppConfig struct {
	Client ClientConfig
	Serve  ServeConfig
	Log    LogConfig
}

func LoadApp() (AppConfig, error) {
	logCfg, err := LoadLog()
	if err != nil {
		return AppConfig{}, err
	}
	clientCfg, err := LoadClient()
	if err != nil {
		return AppConfig{}, err
	}
	serveCfg, err := LoadServe()
	if err != nil {
		return AppConfig{}, err
	}
	return AppConfig{
		Client: clientCfg,
		Serve:  serveCfg,
		Log:    logCfg,
	}, nil
}
