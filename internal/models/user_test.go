package models

import (
	"testing"
)

func TestUserProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    UserProfile
		wantErr bool
	}{
		{
			name: "Valid profile",
			user: UserProfile{
				Email:    "test@example.com",
				Username: "TestUser",
			},
			wantErr: false,
		},
		{
			name: "Empty email",
			user: UserProfile{
				Email:    "",
				Username: "TestUser",
			},
			wantErr: true,
		},
		{
			name: "Invalid email",
			user: UserProfile{
				Email:    "invalid-email",
				Username: "TestUser",
			},
			wantErr: true,
		},
		{
			name: "Empty username",
			user: UserProfile{
				Email:    "test@example.com",
				Username: "",
			},
			wantErr: true,
		},
		{
			name: "Username too short",
			user: UserProfile{
				Email:    "test@example.com",
				Username: "A",
			},
			wantErr: true,
		},
		{
			name: "Username too long",
			user: UserProfile{
				Email:    "test@example.com",
				Username: "This is a very long username that exceeds the maximum allowed length of 100 characters for testing purposes",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("UserProfile.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
