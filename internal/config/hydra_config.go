package config

import (
	"strings"
	"time"
)

type Hydra struct{}

var _ HydraConfig = Hydra{}

func (Hydra) GetHydraAdminURL() string {
	return strings.TrimRight(GetEnv("HYDRA_ADMIN_URL", ""), "/")
}

// GetHydraAdminTimeout of zero leaves the transport defaults in charge.
func (Hydra) GetHydraAdminTimeout() time.Duration {
	return GetDurationEnv("HYDRA_ADMIN_TIMEOUT", 0)
}

func (Hydra) GetRememberFor() time.Duration {
	return GetDurationEnv("REMEMBER_FOR", time.Hour)
}

func (Hydra) GetUsersFile() string {
	return GetEnv("USERS_FILE", "")
}
