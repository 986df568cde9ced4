// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// This file initializes and holds the client objects for the Google Cloud
// services the worker talks to. It acts as a dependency injection
// container: one shared ServiceClients struct is created at startup and
// passed to whatever needs an external connection.
//
// Logic Flow:
//  1. NewCloudServiceClients is called at application startup with the
//     loaded configuration.
//  2. It creates the Storage and Pub/Sub clients.
//  3. It creates one PubSubListener per configured subscription; the
//     listeners get their commands attached later, when the workflows are
//     built.
//  4. Everything is bundled into a ServiceClients struct.
package cloud

import (
	"context"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/storage"
)

// ServiceClients is a container for all the clients that interact with
// external Google Cloud services.
type ServiceClients struct {
	StorageClient   *storage.Client            // Client for Google Cloud Storage.
	PubsubClient    *pubsub.Client             // Client for Google Cloud Pub/Sub.
	PubSubListeners map[string]*PubSubListener // Active Pub/Sub listeners, keyed by a logical name from the config.
}

// Close releases all the active client connections. Client lifetimes are
// normally tied to the root context; this gives tests and controlled
// shutdowns an explicit release.
func (c *ServiceClients) Close() {
	_ = c.StorageClient.Close()
	_ = c.PubsubClient.Close()
}

// NewCloudServiceClients initializes the Google Cloud service clients from
// the provided configuration.
func NewCloudServiceClients(ctx context.Context, config *Config) (*ServiceClients, error) {
	sc, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	pc, err := pubsub.NewClient(ctx, config.Application.GoogleProjectId)
	if err != nil {
		return nil, err
	}

	// The command is nil for now; listeners are wired to their workflows
	// during server setup.
	subscriptions := make(map[string]*PubSubListener)
	for subKey := range config.TopicSubscriptions {
		values := config.TopicSubscriptions[subKey]
		actual, err := NewPubSubListener(pc, values.Name, nil)
		if err != nil {
			return nil, err
		}
		subscriptions[subKey] = actual
	}

	return &ServiceClients{
		StorageClient:   sc,
		PubsubClient:    pc,
		PubSubListeners: subscriptions,
	}, nil
}
