package utility

import (
	"time"

	"guildbot/application"
	"guildbot/bot/commands"
	"guildbot/domain/interfaces"
	"guildbot/domain/services"
)

const category = "Utility"

// Feature serves server, user and host information plus reminders
type Feature struct {
	uowFactory application.UnitOfWorkFactory
	now        func() time.Time
	system     func() (*SystemInfo, error)
}

// NewFeature creates a new utility feature instance
func NewFeature(uowFactory application.UnitOfWorkFactory) *Feature {
	return &Feature{
		uowFactory: uowFactory,
		now:        time.Now,
		system:     CollectSystemInfo,
	}
}

func (f *Feature) reminderService(uow application.UnitOfWork) interfaces.ReminderService {
	return services.NewReminderService(uow.ReminderRepository(), f.now)
}

// Commands returns the utility command table
func (f *Feature) Commands() []*commands.Command {
	return []*commands.Command{
		{
			Name:        "ping",
			Category:    category,
			Description: "Check the bot's latency",
			Handler:     f.handlePing,
		},
		{
			Name:        "serverinfo",
			Category:    category,
			Description: "Get information about the server",
			GuildOnly:   true,
			Handler:     f.handleServerInfo,
		},
		{
			Name:        "userinfo",
			Category:    category,
			Description: "Get information about a user",
			Args:        []commands.ArgSpec{{Name: "member", Kind: commands.ArgUser, Optional: true}},
			GuildOnly:   true,
			Handler:     f.handleUserInfo,
		},
		{
			Name:        "remind",
			Category:    category,
			Description: "Set a reminder",
			Args: []commands.ArgSpec{
				{Name: "time", Kind: commands.ArgString},
				{Name: "reminder", Kind: commands.ArgRest},
			},
			GuildOnly: true,
			Handler:   f.handleRemind,
		},
		{
			Name:        "system",
			Category:    category,
			Description: "Get system information",
			Handler:     f.handleSystem,
		},
		{
			Name:        "test",
			Category:    category,
			Description: "Check that the bot responds",
			Handler:     f.handleTest,
		},
	}
}
